package yqyr

import (
	"time"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// Direction tags a slice of the itinerary relative to the turnaround point.
type Direction int

const (
	Outbound Direction = iota
	Inbound
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Inbound {
		return "INBOUND"
	}
	return "OUTBOUND"
}

// MarshalText renders the direction name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// stopoverThreshold is the gap after which a point counts as a stopover when the fee
// record files no time of its own.
const stopoverThreshold = 24 * time.Hour

// segRange is an inclusive range of segment indices.
type segRange struct {
	first, last int
}

// Geometry is the shape of an itinerary, computed once per calculator.
type Geometry struct {
	// Turnaround is the index of the segment arriving at the furthest point, or -1
	// when the itinerary has no turnaround
	Turnaround int

	// Furthest is the furthest point from the origin, or the destination when there
	// is no turnaround
	Furthest *domain.Location

	// ReturnsToOrigin is set when the journey ends in the origin city
	ReturnsToOrigin bool

	// Online is set when one carrier markets every flown segment
	Online bool

	// Simple is set when the furthest point is a stopover, so the split into
	// directions does not depend on how fares are combined
	Simple bool

	// stopover[i] reports whether the point after segment i is a stopover by default
	stopover []bool
}

// AnalyzeItinerary computes the itinerary geometry.
func AnalyzeItinerary(it *domain.Itinerary, mileage domain.MileageProvider) Geometry {
	n := len(it.Segments)
	g := Geometry{
		Turnaround: -1,
		Furthest:   it.Destination(),
		stopover:   make([]bool, n),
	}
	if n == 0 {
		return g
	}

	for i := range it.Segments {
		g.stopover[i] = defaultStopover(it.Segments, i)
	}

	origin := it.Origin()
	if dest := it.Destination(); origin != nil && dest != nil {
		g.ReturnsToOrigin = origin.CityCode() == dest.CityCode()
	}

	g.Online = len(it.MarketingCarriers()) <= 1

	international := it.IsInternational()
	best := -1
	for i, seg := range it.Segments {
		if seg.Destination == nil || origin == nil {
			continue
		}
		if international && seg.Destination.Nation == origin.Nation {
			continue
		}
		miles := mileage.Mileage(origin, seg.Destination)
		if miles > best {
			best = miles
			g.Turnaround = i
		}
	}

	// arriving at the furthest point on the last segment means there is no way back
	if g.Turnaround == n-1 {
		g.Turnaround = -1
	}
	if g.Turnaround >= 0 {
		g.Furthest = it.Segments[g.Turnaround].Destination
		g.Simple = g.stopover[g.Turnaround]
	} else {
		g.Simple = true
	}
	return g
}

// defaultStopover classifies the point after segment i without a filed threshold.
func defaultStopover(segments []*domain.TravelSegment, i int) bool {
	seg := segments[i]
	if i == len(segments)-1 {
		return true
	}
	if seg.ForcedStopover {
		return true
	}
	if seg.ForcedConnection {
		return false
	}
	next := segments[i+1]
	if seg.Arrival.IsZero() || next.Departure.IsZero() {
		return false
	}
	return next.Departure.Sub(seg.Arrival) > stopoverThreshold
}

type directionRange struct {
	direction Direction
	segRange
}

// directions returns the segment range of each direction present, outbound first.
func (g Geometry) directions(segmentCount int) []directionRange {
	if segmentCount == 0 {
		return nil
	}
	if g.Turnaround < 0 {
		return []directionRange{{Outbound, segRange{0, segmentCount - 1}}}
	}
	return []directionRange{
		{Outbound, segRange{0, g.Turnaround}},
		{Inbound, segRange{g.Turnaround + 1, segmentCount - 1}},
	}
}

// DirectionOf returns the direction of segment idx.
func (g Geometry) DirectionOf(idx int) Direction {
	if g.Turnaround >= 0 && idx > g.Turnaround {
		return Inbound
	}
	return Outbound
}

// IsStopover reports the default classification of the point after segment idx.
func (g Geometry) IsStopover(idx int) bool {
	if idx < 0 || idx >= len(g.stopover) {
		return false
	}
	return g.stopover[idx]
}
