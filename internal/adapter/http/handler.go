package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http/middleware"
	"github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http/response"
	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/usecase"
)

// SurchargeHandler handles HTTP requests for surcharge endpoints.
type SurchargeHandler struct {
	useCase usecase.QuoteUseCase
	log     zerolog.Logger
}

// NewSurchargeHandler creates a new SurchargeHandler with the given use case.
func NewSurchargeHandler(uc usecase.QuoteUseCase, log zerolog.Logger) *SurchargeHandler {
	return &SurchargeHandler{
		useCase: uc,
		log:     log,
	}
}

// Quote handles POST /api/v1/surcharges/quote
//
// @Summary Quote YQ/YR surcharges
// @Description Builds the carrier-imposed surcharge calculators of one itinerary and returns lower bounds, fare path charges and shopping matches per passenger type
// @Tags surcharges
// @Accept json
// @Produce json
// @Param request body QuoteSurchargesRequest true "Itinerary and fares to quote"
// @Success 200 {object} SwaggerQuoteResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 429 {object} response.ErrorDetail "Rate limited"
// @Failure 503 {object} response.ErrorDetail "Filings unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /surcharges/quote [post]
func (h *SurchargeHandler) Quote(c echo.Context) error {
	var req QuoteSurchargesRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	quoteReq, err := ToQuoteRequest(&req)
	if err != nil {
		return h.handleError(c, err)
	}

	result, err := h.useCase.Quote(c.Request().Context(), quoteReq)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Quote(c, result)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *SurchargeHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to HTTP responses.
func (h *SurchargeHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, domain.ErrUnknownValidatingCarrier):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	case errors.Is(err, domain.ErrDataUnavailable):
		h.log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("surcharge filings unavailable")
		return response.ServiceUnavailable(c)
	}

	h.log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("surcharge quote failed")
	return response.InternalServerError(c)
}

// Health handles GET /health
func (h *SurchargeHandler) Health(c echo.Context) error {
	return response.Health(c)
}
