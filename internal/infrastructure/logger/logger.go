// Package logger provides structured logging using zerolog.
// It supports JSON and console output and names the context fields the
// engine tags its entries with.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceName is the default service field of every entry.
const ServiceName = "yqyr-surcharge-engine"

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error, fatal, panic)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the output format (json, console)
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	ServiceName string `env:"SERVICE_NAME" envDefault:"yqyr-surcharge-engine"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		ServiceName: ServiceName,
	}
}

// Logger wraps zerolog.Logger with the engine's context helpers.
type Logger struct {
	zerolog.Logger
}

// New creates a Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a Logger writing to output.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writer := output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	service := cfg.ServiceName
	if service == "" {
		service = ServiceName
	}

	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", service)
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return &Logger{Logger: ctx.Logger()}
}

// Field names shared by every component.
const (
	FieldRequestID     = "request_id"
	FieldTransactionID = "transaction_id"
	FieldCarrier       = "carrier"
	FieldPaxType       = "pax_type"
)

// ForTransaction returns a child of l tagged with a pricing transaction id.
func ForTransaction(l zerolog.Logger, id string) zerolog.Logger {
	return l.With().Str(FieldTransactionID, id).Logger()
}

// ForPaxType returns a child of l tagged with a passenger type.
func ForPaxType(l zerolog.Logger, paxType string) zerolog.Logger {
	return l.With().Str(FieldPaxType, paxType).Logger()
}

// ForCarrier returns a child of l tagged with a carrier and fee code.
func ForCarrier(l zerolog.Logger, carrier, feeCode string) zerolog.Logger {
	return l.With().Str(FieldCarrier, carrier).Str("tax_code", feeCode).Logger()
}

// Nop returns a disabled logger.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Global is the process-wide logger, set at startup.
var Global = Nop()

// SetGlobal replaces the global logger and the zerolog/log package logger.
func SetGlobal(l *Logger) {
	Global = l
	log.Logger = l.Logger
}
