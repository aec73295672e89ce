// Package main is the entry point of the YQ/YR surcharge service.
//
//	@title						YQ/YR Surcharge Engine API
//	@version					1.0.0
//	@description				Computes carrier-imposed YQ/YR surcharges for priced itineraries: lower bounds per validating carrier, fare path charges and shopping matches.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/yqyr-surcharge-engine/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	// Import generated docs for swagger
	_ "github.com/flight-search/yqyr-surcharge-engine/docs"

	surchargehttp "github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http"
	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http/middleware"
	"github.com/flight-search/yqyr-surcharge-engine/internal/config"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/logger"
	"github.com/flight-search/yqyr-surcharge-engine/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.IsDevelopment(),
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("data_source", cfg.Data.Source).
		Msg("Configuration loaded")

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	deps, cleanup, err := buildDependencies(startCtx, cfg, log.Logger)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize surcharge engine")
	}
	defer cleanup()

	quoteUseCase := usecase.NewQuoteUseCase(deps, cfg.Calculator(), &usecase.Config{
		Timeout: cfg.Engine.QuoteTimeout,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)

	handler := surchargehttp.NewSurchargeHandler(quoteUseCase, log.Logger)
	surchargehttp.RegisterRoutes(e, handler, middleware.RateLimit(cfg.Server.RateLimitRPS, 0))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
