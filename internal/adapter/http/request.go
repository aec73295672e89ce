// Package http provides the HTTP handler layer for the surcharge quote API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/timeutil"
)

// QuoteSurchargesRequest represents the request body for a YQ/YR quote.
type QuoteSurchargesRequest struct {
	// Locations describes every airport named by segments or points of sale
	Locations []LocationDTO `json:"locations"`

	// Segments is the itinerary in travel order
	Segments []SegmentDTO `json:"segments"`

	// ValidatingCarriers lists the candidate validating carriers, first is the default
	ValidatingCarriers []string `json:"validatingCarriers,omitempty" example:"LH"`

	// ValidatingCarrier selects the carrier queries run for (optional)
	ValidatingCarrier string `json:"validatingCarrier,omitempty" example:"LH"`

	// PointOfSale and PointOfTicketing are location codes (optional)
	PointOfSale      string `json:"pointOfSale,omitempty" example:"FRA"`
	PointOfTicketing string `json:"pointOfTicketing,omitempty"`

	Agency AgencyDTO `json:"agency"`

	// TicketingDate is YYYY-MM-DD; empty means today
	TicketingDate string `json:"ticketingDate,omitempty" example:"2026-04-24"`

	// PaymentCurrency is the ISO currency charges are quoted in
	PaymentCurrency  string `json:"paymentCurrency" example:"EUR"`
	CurrencyOverride string `json:"currencyOverride,omitempty"`

	Flags domain.RequestFlags `json:"flags"`

	// PaxTypes lists the passenger types to price; empty means ADT
	PaxTypes []string `json:"paxTypes,omitempty" example:"ADT,CNN"`

	FareMarketPaths []*domain.FareMarketPath `json:"fareMarketPaths,omitempty"`
	FarePaths       []*domain.FarePath       `json:"farePaths,omitempty"`
	PaxTypeFares    []*domain.PaxTypeFare    `json:"paxTypeFares,omitempty"`
}

// localTimeLayout is the layout of segment times given without an offset.
const localTimeLayout = "2006-01-02T15:04"

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	carrierCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,3}$`)
	currencyPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
	bookingCodePattern = regexp.MustCompile(`^[A-Z]{1,2}$`)
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate checks the shape of the request and normalizes codes to upper case.
// Cross-references between fare paths, markets and segments are checked by the
// use case.
func (r *QuoteSurchargesRequest) Validate() error {
	errs := &ValidationErrors{}

	zones := r.validateLocations(errs)
	r.validateSegments(errs, zones)
	r.validatePoint(errs, "pointOfSale", &r.PointOfSale, zones)
	r.validatePoint(errs, "pointOfTicketing", &r.PointOfTicketing, zones)
	r.validateCarriers(errs)
	r.validateCurrencies(errs)
	r.validateTicketingDate(errs)

	for i := range r.PaxTypes {
		r.PaxTypes[i] = strings.ToUpper(strings.TrimSpace(r.PaxTypes[i]))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateLocations returns the time zone of every valid location by code.
func (r *QuoteSurchargesRequest) validateLocations(errs *ValidationErrors) map[string]string {
	zones := make(map[string]string, len(r.Locations))
	for i := range r.Locations {
		loc := &r.Locations[i]
		field := fmt.Sprintf("locations[%d]", i)

		loc.Code = strings.ToUpper(loc.Code)
		loc.City = strings.ToUpper(loc.City)
		loc.Nation = strings.ToUpper(loc.Nation)

		if !airportCodePattern.MatchString(loc.Code) {
			errs.Add(field+".code", "code must be a valid 3-letter IATA airport code")
			continue
		}
		if _, dup := zones[loc.Code]; dup {
			errs.Add(field+".code", fmt.Sprintf("location %s is listed twice", loc.Code))
			continue
		}
		if loc.Nation == "" {
			errs.Add(field+".nation", "nation is required")
		}
		zone := loc.TimeZone
		if zone != "" {
			if _, err := timeutil.GetLocation(zone); err != nil {
				errs.Add(field+".timeZone", "timeZone must be a valid IANA time zone")
				zone = ""
			}
		}
		zones[loc.Code] = zone
	}
	return zones
}

func (r *QuoteSurchargesRequest) validateSegments(errs *ValidationErrors, zones map[string]string) {
	if len(r.Segments) == 0 {
		errs.Add("segments", "at least one segment is required")
		return
	}

	for i := range r.Segments {
		s := &r.Segments[i]
		field := fmt.Sprintf("segments[%d]", i)

		s.Origin = strings.ToUpper(s.Origin)
		s.Destination = strings.ToUpper(s.Destination)
		s.MarketingCarrier = strings.ToUpper(s.MarketingCarrier)
		s.OperatingCarrier = strings.ToUpper(s.OperatingCarrier)
		s.BookingCode = strings.ToUpper(s.BookingCode)

		originZone, originOK := zones[s.Origin]
		if !originOK {
			errs.Add(field+".origin", fmt.Sprintf("origin %q is not a listed location", s.Origin))
		}
		destZone, destOK := zones[s.Destination]
		if !destOK {
			errs.Add(field+".destination", fmt.Sprintf("destination %q is not a listed location", s.Destination))
		}

		if s.Surface {
			continue
		}

		if !carrierCodePattern.MatchString(s.MarketingCarrier) {
			errs.Add(field+".marketingCarrier", "marketingCarrier must be a 2 or 3 character airline code")
		}
		if s.OperatingCarrier != "" && !carrierCodePattern.MatchString(s.OperatingCarrier) {
			errs.Add(field+".operatingCarrier", "operatingCarrier must be a 2 or 3 character airline code")
		}
		if s.BookingCode != "" && !bookingCodePattern.MatchString(s.BookingCode) {
			errs.Add(field+".bookingCode", "bookingCode must be one or two letters")
		}

		if s.Departure == "" {
			errs.Add(field+".departure", "departure is required for air segments")
		} else if originOK {
			if _, err := parseSegmentTime(s.Departure, originZone); err != nil {
				errs.Add(field+".departure", "departure must be YYYY-MM-DDTHH:MM or RFC 3339")
			}
		}
		if s.Arrival != "" && destOK {
			if _, err := parseSegmentTime(s.Arrival, destZone); err != nil {
				errs.Add(field+".arrival", "arrival must be YYYY-MM-DDTHH:MM or RFC 3339")
			}
		}
	}
}

func (r *QuoteSurchargesRequest) validatePoint(errs *ValidationErrors, field string, code *string, zones map[string]string) {
	if *code == "" {
		return
	}
	*code = strings.ToUpper(*code)
	if _, ok := zones[*code]; !ok {
		errs.Add(field, fmt.Sprintf("%s %q is not a listed location", field, *code))
	}
}

func (r *QuoteSurchargesRequest) validateCarriers(errs *ValidationErrors) {
	for i, cxr := range r.ValidatingCarriers {
		normalized := strings.ToUpper(cxr)
		if !carrierCodePattern.MatchString(normalized) {
			errs.Add(fmt.Sprintf("validatingCarriers[%d]", i), "airline code must be 2 or 3 characters")
		}
		r.ValidatingCarriers[i] = normalized
	}

	if r.ValidatingCarrier != "" {
		r.ValidatingCarrier = strings.ToUpper(r.ValidatingCarrier)
		if !carrierCodePattern.MatchString(r.ValidatingCarrier) {
			errs.Add("validatingCarrier", "airline code must be 2 or 3 characters")
		}
	}
}

func (r *QuoteSurchargesRequest) validateCurrencies(errs *ValidationErrors) {
	r.PaymentCurrency = strings.ToUpper(r.PaymentCurrency)
	if r.PaymentCurrency == "" {
		errs.Add("paymentCurrency", "paymentCurrency is required")
	} else if !currencyPattern.MatchString(r.PaymentCurrency) {
		errs.Add("paymentCurrency", "paymentCurrency must be a 3-letter ISO currency code")
	}

	if r.CurrencyOverride != "" {
		r.CurrencyOverride = strings.ToUpper(r.CurrencyOverride)
		if !currencyPattern.MatchString(r.CurrencyOverride) {
			errs.Add("currencyOverride", "currencyOverride must be a 3-letter ISO currency code")
		}
	}
}

func (r *QuoteSurchargesRequest) validateTicketingDate(errs *ValidationErrors) {
	if r.TicketingDate == "" {
		return
	}
	if _, err := timeutil.ParseDate(r.TicketingDate); err != nil {
		errs.Add("ticketingDate", "ticketingDate must be in YYYY-MM-DD format")
	}
}

// parseSegmentTime reads an RFC 3339 time, or a local time in the airport's zone.
func parseSegmentTime(value, timezone string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return timeutil.ParseLocal(localTimeLayout, value, timezone)
}
