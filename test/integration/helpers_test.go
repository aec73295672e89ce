package integration

import (
	"strings"

	httpAdapter "github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http"
)

type testRequest = httpAdapter.QuoteSurchargesRequest

func lower(s string) string {
	return strings.ToLower(s)
}
