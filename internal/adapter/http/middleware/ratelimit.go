package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http/response"
)

// RateLimit returns middleware admitting rps requests per second with bursts of
// up to burst requests. Requests over the limit get 429 with a Retry-After hint.
// A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) echo.MiddlewareFunc {
	if rps <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if burst < 1 {
		burst = max(1, int(math.Ceil(rps)))
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	retryAfter := strconv.Itoa(max(1, int(math.Ceil(1/rps))))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				c.Response().Header().Set("Retry-After", retryAfter)
				return response.TooManyRequests(c)
			}
			return next(c)
		}
	}
}
