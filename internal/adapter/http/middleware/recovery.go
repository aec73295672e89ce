package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http/response"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/logger"
)

// RecoveryConfig controls what a recovered panic logs.
type RecoveryConfig struct {
	// DisablePrintStack omits the stack trace from the log entry
	DisablePrintStack bool

	// StackSize truncates the logged stack trace; 0 logs it whole
	StackSize int
}

// DefaultRecoveryConfig returns the default recovery configuration.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{StackSize: 8 << 10}
}

// Recover returns middleware that turns a handler panic into a logged 500 response.
// The server keeps serving subsequent requests.
func Recover(log zerolog.Logger) echo.MiddlewareFunc {
	return RecoverWithConfig(log, DefaultRecoveryConfig())
}

// RecoverWithConfig returns recovery middleware with custom configuration.
func RecoverWithConfig(log zerolog.Logger, config RecoveryConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				panicMsg := fmt.Sprintf("%v", r)
				if e, ok := r.(error); ok {
					panicMsg = e.Error()
				}

				event := log.Error().
					Str(logger.FieldRequestID, GetRequestID(c)).
					Str("path", c.Request().URL.Path).
					Str("panic", panicMsg)

				if !config.DisablePrintStack {
					stack := debug.Stack()
					if config.StackSize > 0 && len(stack) > config.StackSize {
						stack = stack[:config.StackSize]
					}
					event = event.Str("stack", string(stack))
				}
				event.Msg("Panic recovered")

				// Generic body so internal details never leak
				if !c.Response().Committed {
					err = response.InternalServerError(c)
				}
			}()

			return next(c)
		}
	}
}
