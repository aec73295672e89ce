// Package integration provides helpers and integration tests for the surcharge engine.
// Integration tests verify that components work together correctly, including
// HTTP handlers, the quote use case, the calculators and the memory repository.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	httpAdapter "github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http"
	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/currency"
	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/repository/memory"
	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/geo"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/timeutil"
	"github.com/flight-search/yqyr-surcharge-engine/internal/usecase"
	"github.com/flight-search/yqyr-surcharge-engine/internal/yqyr"
	"github.com/flight-search/yqyr-surcharge-engine/test/testutil"
)

// QuotePath is the quote endpoint.
const QuotePath = "/api/v1/surcharges/quote"

// TestDay is the clock's "today" in integration tests.
var TestDay = time.Date(2026, 4, 24, 0, 0, 0, 0, time.UTC)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.SurchargeHandler
}

// NewTestServer creates a new test server with the given use case.
func NewTestServer(uc usecase.QuoteUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewSurchargeHandler(uc, zerolog.Nop())
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// QuoteRequest posts body to the quote endpoint.
func (ts *TestServer) QuoteRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   QuotePath,
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseQuoteResponse parses the response body as a quote.
func (r *Response) ParseQuoteResponse() (*httpAdapter.SwaggerQuoteResponse, error) {
	var resp httpAdapter.SwaggerQuoteResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// BundleJSON is a small filing set: LH charges 25 EUR YQ on every sector and
// 10 EUR YR once per direction, BA charges 30 EUR YQ on every sector.
const BundleJSON = `{
	"fees": [
		{"carrier": "LH", "taxCode": "YQ", "subCode": "F", "seqNo": 100, "amount": "25", "currency": "EUR", "sectorPortionInd": "S"},
		{"carrier": "LH", "taxCode": "YR", "subCode": "I", "seqNo": 100, "amount": "10", "currency": "EUR", "feeApplInd": "1", "sectorPortionInd": "S"},
		{"carrier": "BA", "taxCode": "YQ", "subCode": "F", "seqNo": 100, "amount": "30", "currency": "EUR", "sectorPortionInd": "S"}
	],
	"rates": [
		{"currency": "EUR", "perNuc": "0.92", "decimals": 2},
		{"currency": "USD", "perNuc": "1", "decimals": 2},
		{"currency": "GBP", "perNuc": "0.79", "decimals": 2}
	]
}`

// LoadBundle parses BundleJSON into a memory repository.
func LoadBundle() (*memory.Repository, error) {
	return memory.Parse([]byte(BundleJSON))
}

// FixturePath returns the path of the filing bundle shipped with the service.
func FixturePath() string {
	return testutil.FixturePath("yqyr.json")
}

// NewDependencies builds calculator dependencies around ds with a fixed clock.
func NewDependencies(ds domain.SurchargeDataSource, rates []domain.CurrencyRate) (yqyr.Dependencies, error) {
	if len(rates) == 0 {
		rates = currency.DefaultRates()
	}
	table, err := currency.NewTable(rates)
	if err != nil {
		return yqyr.Dependencies{}, err
	}
	return yqyr.Dependencies{
		DataSource: ds,
		Currency:   table,
		Mileage:    geo.NewGreatCircle(),
		Clock:      timeutil.NewFixedClock(TestDay),
		Logger:     zerolog.Nop(),
	}, nil
}

// CreateUseCase creates a use case over ds with default configuration.
func CreateUseCase(ds domain.SurchargeDataSource, rates []domain.CurrencyRate) (usecase.QuoteUseCase, error) {
	return CreateUseCaseWithConfig(ds, rates, nil)
}

// CreateUseCaseWithConfig creates a use case with custom configuration.
func CreateUseCaseWithConfig(ds domain.SurchargeDataSource, rates []domain.CurrencyRate, config *usecase.Config) (usecase.QuoteUseCase, error) {
	deps, err := NewDependencies(ds, rates)
	if err != nil {
		return nil, err
	}
	return usecase.NewQuoteUseCase(deps, yqyr.DefaultConfig(), config), nil
}

// DefaultQuoteRequest returns FRA-MUC-JFK on LH, ticketed in Frankfurt and paid in EUR.
func DefaultQuoteRequest() httpAdapter.QuoteSurchargesRequest {
	return httpAdapter.QuoteSurchargesRequest{
		Locations: []httpAdapter.LocationDTO{
			{Code: "FRA", City: "FRA", Nation: "DE", SubArea: "21", Area: "2", Lat: 50.0333, Lon: 8.5706, TimeZone: "Europe/Berlin"},
			{Code: "MUC", City: "MUC", Nation: "DE", SubArea: "21", Area: "2", Lat: 48.3538, Lon: 11.7861, TimeZone: "Europe/Berlin"},
			{Code: "JFK", City: "NYC", Nation: "US", Area: "1", Lat: 40.6413, Lon: -73.7781, TimeZone: "America/New_York"},
		},
		Segments: []httpAdapter.SegmentDTO{
			{Origin: "FRA", Destination: "MUC", MarketingCarrier: "LH", FlightNumber: 100, BookingCode: "Y", Departure: "2026-05-04T08:00", Arrival: "2026-05-04T09:00"},
			{Origin: "MUC", Destination: "JFK", MarketingCarrier: "LH", FlightNumber: 410, BookingCode: "Y", Departure: "2026-05-04T11:00", Arrival: "2026-05-04T14:00"},
		},
		ValidatingCarriers: []string{"LH"},
		PointOfSale:        "FRA",
		TicketingDate:      "2026-04-24",
		PaymentCurrency:    "EUR",
	}
}

// WholeJourneyFarePath prices both segments of DefaultQuoteRequest with one fare.
func WholeJourneyFarePath(id, paxType string) *domain.FarePath {
	return &domain.FarePath{
		ID:      id,
		PaxType: paxType,
		Usages: []*domain.FareUsage{
			{FareBasis: "YOW", SegmentIndices: []int{0, 1}},
		},
	}
}
