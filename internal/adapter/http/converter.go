package http

import (
	"fmt"
	"time"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/timeutil"
	"github.com/flight-search/yqyr-surcharge-engine/internal/usecase"
)

// ToQuoteRequest converts a validated QuoteSurchargesRequest to a usecase.QuoteRequest.
func ToQuoteRequest(req *QuoteSurchargesRequest) (usecase.QuoteRequest, error) {
	locations := make(map[string]*domain.Location, len(req.Locations))
	for i := range req.Locations {
		loc := req.Locations[i].toDomain()
		locations[loc.Code] = loc
	}

	it, err := toDomainItinerary(req, locations)
	if err != nil {
		return usecase.QuoteRequest{}, err
	}

	return usecase.QuoteRequest{
		Itinerary:         it,
		PaxTypes:          req.PaxTypes,
		FareMarketPaths:   req.FareMarketPaths,
		FarePaths:         req.FarePaths,
		PaxTypeFares:      req.PaxTypeFares,
		ValidatingCarrier: req.ValidatingCarrier,
	}, nil
}

func toDomainItinerary(req *QuoteSurchargesRequest, locations map[string]*domain.Location) (*domain.Itinerary, error) {
	it := &domain.Itinerary{
		Segments:           make([]*domain.TravelSegment, len(req.Segments)),
		ValidatingCarriers: req.ValidatingCarriers,
		PointOfSale:        locations[req.PointOfSale],
		PointOfTicketing:   locations[req.PointOfTicketing],
		Agency:             req.Agency.toDomain(),
		PaymentCurrency:    req.PaymentCurrency,
		CurrencyOverride:   req.CurrencyOverride,
		Flags:              req.Flags,
	}

	if req.TicketingDate != "" {
		date, err := timeutil.ParseDate(req.TicketingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: ticketingDate: %v", domain.ErrInvalidRequest, err)
		}
		it.TicketingDate = date
	}

	for i := range req.Segments {
		seg, err := toDomainSegment(&req.Segments[i], locations)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d: %v", domain.ErrInvalidRequest, i, err)
		}
		it.Segments[i] = seg
	}
	return it, nil
}

func toDomainSegment(s *SegmentDTO, locations map[string]*domain.Location) (*domain.TravelSegment, error) {
	origin, dest := locations[s.Origin], locations[s.Destination]
	if origin == nil || dest == nil {
		return nil, fmt.Errorf("unknown location %s-%s", s.Origin, s.Destination)
	}

	seg := &domain.TravelSegment{
		Origin:           origin,
		Destination:      dest,
		MarketingCarrier: s.MarketingCarrier,
		OperatingCarrier: s.OperatingCarrier,
		FlightNumber:     s.FlightNumber,
		Equipment:        s.Equipment,
		BookingCode:      s.BookingCode,
		ForcedStopover:   s.ForcedStopover,
		ForcedConnection: s.ForcedConnection,
		Surface:          s.Surface,
	}
	if s.Surface {
		seg.MarketingCarrier = ""
	}

	var err error
	if seg.Departure, err = optionalTime(s.Departure, origin.TimeZone); err != nil {
		return nil, fmt.Errorf("departure: %w", err)
	}
	if seg.Arrival, err = optionalTime(s.Arrival, dest.TimeZone); err != nil {
		return nil, fmt.Errorf("arrival: %w", err)
	}
	return seg, nil
}

func optionalTime(value, timezone string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return parseSegmentTime(value, timezone)
}
