package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health reports the service as up.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Service: "yqyr-surcharge-engine"})
}

// Quote writes a priced quote with 200 OK. Quotes depend on the request clock
// and filings, so they are never cached.
func Quote(c echo.Context, result interface{}) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, result)
}
