// Package geo computes distances between itinerary points.
package geo

import (
	"math"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// earthRadiusMiles is the mean earth radius in statute miles.
const earthRadiusMiles = 3958.8

// GreatCircle computes great-circle mileage from location coordinates.
type GreatCircle struct{}

// NewGreatCircle creates a great-circle mileage provider.
func NewGreatCircle() *GreatCircle {
	return &GreatCircle{}
}

// Mileage returns the rounded great-circle distance in statute miles.
// Missing locations are zero miles apart.
func (GreatCircle) Mileage(from, to *domain.Location) int {
	if from == nil || to == nil {
		return 0
	}
	return int(math.Round(Haversine(from.Lat, from.Lon, to.Lat, to.Lon)))
}

// Haversine returns the distance in statute miles between two coordinates in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1, rlat2 := radians(lat1), radians(lat2)
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(a)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Table is a fixed mileage lookup keyed by airport codes, falling back to great
// circle distance for pairs it does not know. Useful for filed mileage overrides.
type Table struct {
	miles    map[[2]string]int
	fallback GreatCircle
}

// NewTable creates a mileage table. Pairs are symmetric.
func NewTable(pairs map[[2]string]int) *Table {
	t := &Table{miles: make(map[[2]string]int, len(pairs)*2)}
	for k, v := range pairs {
		t.miles[k] = v
		t.miles[[2]string{k[1], k[0]}] = v
	}
	return t
}

// Mileage returns the tabled distance, or the great-circle distance.
func (t *Table) Mileage(from, to *domain.Location) int {
	if from == nil || to == nil {
		return 0
	}
	if miles, ok := t.miles[[2]string{from.Code, to.Code}]; ok {
		return miles
	}
	return t.fallback.Mileage(from, to)
}
