package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/currency"
	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/repository/memory"
	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/repository/postgres"
	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/repository/rediscache"
	"github.com/flight-search/yqyr-surcharge-engine/internal/config"
	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/geo"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/memguard"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/timeutil"
	"github.com/flight-search/yqyr-surcharge-engine/internal/yqyr"
)

// buildDependencies wires the calculator collaborators selected by cfg. The
// returned cleanup releases database and cache connections.
func buildDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (yqyr.Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var (
		source domain.SurchargeDataSource
		rates  []domain.CurrencyRate
	)

	switch cfg.Data.Source {
	case config.DataSourcePostgres:
		pool, err := postgres.Connect(ctx, cfg.Data.PostgresDSN)
		if err != nil {
			return yqyr.Dependencies{}, cleanup, err
		}
		closers = append(closers, pool.Close)

		repo := postgres.New(pool, log)
		if err := repo.Migrate(ctx); err != nil {
			cleanup()
			return yqyr.Dependencies{}, func() {}, err
		}
		source = repo
		log.Info().Msg("Using Postgres filing repository")
	default:
		repo, err := memory.Load(cfg.Data.File)
		if err != nil {
			return yqyr.Dependencies{}, cleanup, err
		}
		source = repo
		rates = repo.Rates()
		log.Info().
			Str("file", cfg.Data.File).
			Strs("carriers", repo.Carriers()).
			Msg("Loaded filing bundle")
	}

	if cfg.Data.RedisAddr != "" {
		client := rediscache.NewClient(cfg.Data.RedisAddr)
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("Error closing redis client")
			}
		})
		source = rediscache.New(source, client, cfg.Data.RedisTTL, log)
		log.Info().Str("addr", cfg.Data.RedisAddr).Dur("ttl", cfg.Data.RedisTTL).Msg("Filing cache enabled")
	}

	if len(rates) == 0 {
		rates = currency.DefaultRates()
	}
	table, err := currency.NewTable(rates)
	if err != nil {
		cleanup()
		return yqyr.Dependencies{}, func() {}, fmt.Errorf("currency rates: %w", err)
	}

	deps := yqyr.Dependencies{
		DataSource: source,
		Currency:   table,
		Mileage:    geo.NewGreatCircle(),
		Governor:   memguard.NewHeapGovernor(cfg.Engine.HeapLimitMB),
		Clock:      timeutil.NewRealClock(),
		Logger:     log,
	}
	if cfg.Diagnostics.Enabled {
		deps.Diagnostics = yqyr.NewDiagnostics(log.Level(zerolog.DebugLevel), cfg.DiagnosticFilter())
	}
	return deps, cleanup, nil
}
