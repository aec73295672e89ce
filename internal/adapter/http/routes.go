package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers the surcharge API routes. Middleware given here
// applies to the versioned API group only, so health checks and metric scrapes
// are never rate limited.
func RegisterRoutes(e *echo.Echo, h *SurchargeHandler, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", middleware...)

	surcharges := api.Group("/surcharges")
	surcharges.POST("/quote", h.Quote)
}
