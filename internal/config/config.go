// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-search/yqyr-surcharge-engine/internal/yqyr"
)

// Data source kinds.
const (
	DataSourceFile     = "file"
	DataSourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Logging     LoggingConfig
	App         AppConfig
	Engine      EngineConfig
	Diagnostics DiagnosticsConfig
	Data        DataConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`

	// RateLimitRPS limits quote requests per second; zero disables the limiter
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS" envDefault:"50"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// EngineConfig holds the surcharge calculator limits.
type EngineConfig struct {
	MaxApplications     int           `env:"YQYR_MAX_APPLICATIONS" envDefault:"200000"`
	MemoryCheckInterval int           `env:"YQYR_MEMORY_CHECK_INTERVAL" envDefault:"10000"`
	HeapLimitMB         int           `env:"YQYR_HEAP_LIMIT_MB" envDefault:"2048"`
	LessLocking         bool          `env:"YQYR_LESS_LOCKING" envDefault:"false"`
	QuoteTimeout        time.Duration `env:"YQYR_QUOTE_TIMEOUT" envDefault:"5s"`
}

// DiagnosticsConfig controls the fee match trace.
type DiagnosticsConfig struct {
	Enabled bool   `env:"YQYR_DIAGNOSTICS" envDefault:"false"`
	Carrier string `env:"YQYR_DIAG_CARRIER"`
	TaxCode string `env:"YQYR_DIAG_TAX_CODE"`
	SeqNo   int64  `env:"YQYR_DIAG_SEQ" envDefault:"0"`
}

// DataConfig selects where filings come from.
type DataConfig struct {
	Source      string        `env:"DATA_SOURCE" envDefault:"file"`
	File        string        `env:"DATA_FILE" envDefault:"fixtures/yqyr.json"`
	PostgresDSN string        `env:"POSTGRES_DSN"`
	RedisAddr   string        `env:"REDIS_ADDR"`
	RedisTTL    time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %v", cfg.Server.RateLimitRPS)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if cfg.Engine.MaxApplications < 0 {
		return fmt.Errorf("YQYR_MAX_APPLICATIONS must not be negative, got %d", cfg.Engine.MaxApplications)
	}
	if cfg.Engine.MemoryCheckInterval < 1 {
		return fmt.Errorf("YQYR_MEMORY_CHECK_INTERVAL must be at least 1, got %d", cfg.Engine.MemoryCheckInterval)
	}
	if cfg.Engine.HeapLimitMB < 0 {
		return fmt.Errorf("YQYR_HEAP_LIMIT_MB must not be negative, got %d", cfg.Engine.HeapLimitMB)
	}
	if cfg.Engine.QuoteTimeout <= 0 {
		return fmt.Errorf("YQYR_QUOTE_TIMEOUT must be positive")
	}
	if cfg.Diagnostics.SeqNo < 0 {
		return fmt.Errorf("YQYR_DIAG_SEQ must not be negative, got %d", cfg.Diagnostics.SeqNo)
	}

	switch cfg.Data.Source {
	case DataSourceFile:
		if cfg.Data.File == "" {
			return fmt.Errorf("DATA_FILE is required when DATA_SOURCE=file")
		}
	case DataSourcePostgres:
		if cfg.Data.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when DATA_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be one of: file, postgres; got %q", cfg.Data.Source)
	}
	if cfg.Data.RedisAddr != "" && cfg.Data.RedisTTL <= 0 {
		return fmt.Errorf("REDIS_TTL must be positive when REDIS_ADDR is set")
	}

	return nil
}

// Calculator returns the calculator settings.
func (c *Config) Calculator() yqyr.Config {
	cfg := yqyr.DefaultConfig()
	cfg.MaxApplications = c.Engine.MaxApplications
	cfg.MemoryCheckInterval = c.Engine.MemoryCheckInterval
	cfg.LessLocking = c.Engine.LessLocking
	return cfg
}

// DiagnosticFilter returns the trace filter.
func (c *Config) DiagnosticFilter() yqyr.DiagnosticFilter {
	return yqyr.DiagnosticFilter{
		Carrier: c.Diagnostics.Carrier,
		TaxCode: c.Diagnostics.TaxCode,
		SeqNo:   c.Diagnostics.SeqNo,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
