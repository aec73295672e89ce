package domain

import "time"

// TravelSegment is one flight (or surface) segment of an itinerary.
type TravelSegment struct {
	// Origin and Destination are the segment endpoints
	Origin      *Location `json:"origin"`
	Destination *Location `json:"destination"`

	// MarketingCarrier is the carrier code the flight is sold under (e.g., "LH")
	MarketingCarrier string `json:"marketingCarrier"`

	// OperatingCarrier is the carrier actually flying the segment
	OperatingCarrier string `json:"operatingCarrier,omitempty"`

	// FlightNumber is the marketing flight number
	FlightNumber int `json:"flightNumber"`

	// Equipment is the IATA aircraft type code (e.g., "744")
	Equipment string `json:"equipment,omitempty"`

	// BookingCode is the reservation booking designator (e.g., "Y")
	BookingCode string `json:"bookingCode"`

	// Departure and Arrival are the scheduled local times
	Departure time.Time `json:"departure"`
	Arrival   time.Time `json:"arrival"`

	// ForcedStopover and ForcedConnection override the timing-based classification
	ForcedStopover   bool `json:"forcedStopover,omitempty"`
	ForcedConnection bool `json:"forcedConnection,omitempty"`

	// Surface marks an ARUNK (surface) segment that no carrier operates
	Surface bool `json:"surface,omitempty"`
}

// IsAir reports whether the segment is a flown segment with a carrier.
func (s *TravelSegment) IsAir() bool {
	return !s.Surface && s.MarketingCarrier != ""
}

// Operating returns the operating carrier, defaulting to the marketing carrier.
func (s *TravelSegment) Operating() string {
	if s.OperatingCarrier != "" {
		return s.OperatingCarrier
	}
	return s.MarketingCarrier
}

// IsInternational reports whether the segment crosses a national border.
func (s *TravelSegment) IsInternational() bool {
	if s.Origin == nil || s.Destination == nil {
		return false
	}
	return s.Origin.Nation != s.Destination.Nation
}

// Agency identifies the selling agency.
type Agency struct {
	PCC        string `json:"pcc,omitempty"`
	IATANumber string `json:"iataNumber,omitempty"`
}

// RequestFlags carry the pricing-request modes that influence matching.
type RequestFlags struct {
	// LowFareRequested is set for rebook-to-lowest-fare requests
	LowFareRequested bool `json:"lowFareRequested,omitempty"`

	// NoAvailability is set when availability is not checked
	NoAvailability bool `json:"noAvailability,omitempty"`

	// NoPNRPricing is set when pricing runs without a booked PNR
	NoPNRPricing bool `json:"noPnrPricing,omitempty"`

	// RexNewItinerary is set when pricing the new itinerary of an exchange
	RexNewItinerary bool `json:"rexNewItinerary,omitempty"`

	// OriginBasedRT enables origin-based round-trip pricing
	OriginBasedRT bool `json:"originBasedRt,omitempty"`

	// OutboundFixed tells origin-based round-trip pricing that the outbound leg is
	// already priced; otherwise the inbound leg is the fixed one
	OutboundFixed bool `json:"outboundFixed,omitempty"`
}

// Itinerary is the journey being priced plus its point-of-sale context.
type Itinerary struct {
	Segments []*TravelSegment `json:"segments"`

	// ValidatingCarriers lists the candidate validating carriers; the first one is the
	// itinerary's own validating carrier
	ValidatingCarriers []string `json:"validatingCarriers,omitempty"`

	// PointOfSale and PointOfTicketing locate the sale
	PointOfSale      *Location `json:"pointOfSale,omitempty"`
	PointOfTicketing *Location `json:"pointOfTicketing,omitempty"`

	Agency Agency `json:"agency"`

	// TicketingDate defaults to the request time when zero
	TicketingDate time.Time `json:"ticketingDate"`

	// PaymentCurrency is the agent's currency
	PaymentCurrency string `json:"paymentCurrency"`

	// CurrencyOverride replaces PaymentCurrency when set
	CurrencyOverride string `json:"currencyOverride,omitempty"`

	Flags RequestFlags `json:"flags"`
}

// ChargeCurrency returns the currency surcharges are charged in.
func (it *Itinerary) ChargeCurrency() string {
	if it.CurrencyOverride != "" {
		return it.CurrencyOverride
	}
	return it.PaymentCurrency
}

// ValidatingCarrier returns the itinerary's own validating carrier, or "".
func (it *Itinerary) ValidatingCarrier() string {
	if len(it.ValidatingCarriers) == 0 {
		return ""
	}
	return it.ValidatingCarriers[0]
}

// TravelDate returns the departure date of the first segment.
func (it *Itinerary) TravelDate() time.Time {
	if len(it.Segments) == 0 {
		return time.Time{}
	}
	return it.Segments[0].Departure
}

// Origin returns the journey origin.
func (it *Itinerary) Origin() *Location {
	if len(it.Segments) == 0 {
		return nil
	}
	return it.Segments[0].Origin
}

// Destination returns the journey destination.
func (it *Itinerary) Destination() *Location {
	if len(it.Segments) == 0 {
		return nil
	}
	return it.Segments[len(it.Segments)-1].Destination
}

// IsInternational reports whether any segment leaves the origin nation.
func (it *Itinerary) IsInternational() bool {
	origin := it.Origin()
	if origin == nil {
		return false
	}
	for _, seg := range it.Segments {
		if seg.Destination != nil && seg.Destination.Nation != origin.Nation {
			return true
		}
	}
	return false
}

// MarketingCarriers returns the distinct marketing carriers in itinerary order.
func (it *Itinerary) MarketingCarriers() []string {
	seen := make(map[string]bool)
	var result []string
	for _, seg := range it.Segments {
		if !seg.IsAir() || seen[seg.MarketingCarrier] {
			continue
		}
		seen[seg.MarketingCarrier] = true
		result = append(result, seg.MarketingCarrier)
	}
	return result
}

// BookingCodes returns the booked code of every segment.
func (it *Itinerary) BookingCodes() []string {
	codes := make([]string, len(it.Segments))
	for i, seg := range it.Segments {
		codes[i] = seg.BookingCode
	}
	return codes
}

// HasMarketingCarrier reports whether carrier markets any segment.
func (it *Itinerary) HasMarketingCarrier(carrier string) bool {
	for _, seg := range it.Segments {
		if seg.IsAir() && seg.MarketingCarrier == carrier {
			return true
		}
	}
	return false
}
