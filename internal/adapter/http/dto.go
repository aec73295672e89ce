package http

import (
	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// LocationDTO describes one airport the request refers to. Segments and the
// point of sale name locations by code.
// Example: {"code": "FRA", "nation": "DE", "subArea": "21", "area": "2", "timeZone": "Europe/Berlin"}
type LocationDTO struct {
	// Code is the IATA airport code
	Code string `json:"code" example:"FRA"`

	// City is the IATA city code; empty means the airport code
	City string `json:"city,omitempty" example:"FRA"`

	// State is the state or province code, when the nation has them
	State string `json:"state,omitempty"`

	// Nation is the ISO country code
	Nation string `json:"nation" example:"DE"`

	// SubArea is the IATA sub-area
	SubArea string `json:"subArea,omitempty" example:"21"`

	// Area is the IATA traffic conference area (1, 2 or 3)
	Area string `json:"area,omitempty" example:"2"`

	Lat float64 `json:"lat" example:"50.0333"`
	Lon float64 `json:"lon" example:"8.5706"`

	// TimeZone is the IANA zone local segment times are read in; empty means UTC
	TimeZone string `json:"timeZone,omitempty" example:"Europe/Berlin"`
}

// SegmentDTO is one travel segment. Times are local to the departure and arrival
// airports ("2006-01-02T15:04") unless given in RFC 3339.
type SegmentDTO struct {
	Origin      string `json:"origin" example:"FRA"`
	Destination string `json:"destination" example:"MUC"`

	MarketingCarrier string `json:"marketingCarrier" example:"LH"`
	OperatingCarrier string `json:"operatingCarrier,omitempty"`
	FlightNumber     int    `json:"flightNumber" example:"100"`
	Equipment        string `json:"equipment,omitempty" example:"320"`
	BookingCode      string `json:"bookingCode" example:"Y"`

	Departure string `json:"departure" example:"2026-05-04T08:00"`
	Arrival   string `json:"arrival" example:"2026-05-04T09:00"`

	ForcedStopover   bool `json:"forcedStopover,omitempty"`
	ForcedConnection bool `json:"forcedConnection,omitempty"`

	// Surface marks an open-jaw gap travelled by other means
	Surface bool `json:"surface,omitempty"`
}

// AgencyDTO identifies the selling agency.
type AgencyDTO struct {
	PCC        string `json:"pcc,omitempty" example:"A1B2"`
	IATANumber string `json:"iataNumber,omitempty" example:"23456789"`
}

func (a AgencyDTO) toDomain() domain.Agency {
	return domain.Agency{PCC: a.PCC, IATANumber: a.IATANumber}
}

func (l *LocationDTO) toDomain() *domain.Location {
	return &domain.Location{
		Code:     l.Code,
		City:     l.City,
		State:    l.State,
		Nation:   l.Nation,
		SubArea:  l.SubArea,
		Area:     l.Area,
		Lat:      l.Lat,
		Lon:      l.Lon,
		TimeZone: l.TimeZone,
	}
}
