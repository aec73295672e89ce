// Package domain contains the core business entities for the YQYR surcharge engine.
// These entities are storage-agnostic and shared by the calculator, the data sources
// and the HTTP/CLI surfaces.
package domain

import "strings"

// LocType identifies how a filed location code is interpreted.
type LocType string

// Location types used by fee filings.
const (
	LocTypeNone    LocType = ""
	LocTypeArea    LocType = "A"
	LocTypeSubArea LocType = "*"
	LocTypeNation  LocType = "N"
	LocTypeState   LocType = "S"
	LocTypeCity    LocType = "C"
	LocTypeAirport LocType = "P"
	LocTypeZone    LocType = "Z"
)

// Location is an airport or city point on the itinerary.
type Location struct {
	// Code is the IATA airport code (e.g., "FRA")
	Code string `json:"code"`

	// City is the IATA city code (e.g., "FRA")
	City string `json:"city,omitempty"`

	// State is the state or province code, when the nation uses them
	State string `json:"state,omitempty"`

	// Nation is the ISO country code (e.g., "DE")
	Nation string `json:"nation"`

	// SubArea is the IATA sub-area (e.g., "21" for Europe)
	SubArea string `json:"subArea,omitempty"`

	// Area is the IATA traffic conference area ("1", "2" or "3")
	Area string `json:"area,omitempty"`

	// Lat and Lon are used for mileage computation
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// TimeZone is the IANA zone of the airport (e.g., "Europe/Berlin")
	TimeZone string `json:"timeZone,omitempty"`
}

// CityCode returns the city code, falling back to the airport code.
func (l *Location) CityCode() string {
	if l.City != "" {
		return l.City
	}
	return l.Code
}

// LocKey is a filed location specification (type + code).
type LocKey struct {
	Type LocType `json:"type"`
	Code string  `json:"code"`
}

// IsBlank reports whether the key carries no restriction.
func (k LocKey) IsBlank() bool {
	return k.Type == LocTypeNone || strings.TrimSpace(k.Code) == ""
}

// IsZone reports whether the key refers to a zone table.
func (k LocKey) IsZone() bool {
	return k.Type == LocTypeZone
}

// Contains reports whether loc lies inside the key. Zones are not resolved here;
// callers expand zones into member keys first.
func (k LocKey) Contains(loc *Location) bool {
	if loc == nil {
		return false
	}
	switch k.Type {
	case LocTypeArea:
		return loc.Area == k.Code
	case LocTypeSubArea:
		return loc.SubArea == k.Code
	case LocTypeNation:
		return loc.Nation == k.Code
	case LocTypeState:
		return loc.State != "" && loc.State == k.Code
	case LocTypeCity:
		return loc.CityCode() == k.Code
	case LocTypeAirport:
		return loc.Code == k.Code
	default:
		return false
	}
}

// String renders the key as "type:code".
func (k LocKey) String() string {
	if k.IsBlank() {
		return ""
	}
	return string(k.Type) + ":" + k.Code
}
