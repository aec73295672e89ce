package yqyr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

func TestAnalyzeItinerary(t *testing.T) {
	tests := []struct {
		name           string
		it             *domain.Itinerary
		wantTurnaround int
		wantFurthest   string
		wantRTO        bool
		wantSimple     bool
		wantDirections []directionRange
	}{
		{
			name:           "one way has no turnaround",
			it:             connectingLH(),
			wantTurnaround: -1,
			wantFurthest:   "JFK",
			wantSimple:     true,
			wantDirections: []directionRange{{Outbound, segRange{0, 1}}},
		},
		{
			name:           "round trip turns at the stopover",
			it:             roundTripLH(),
			wantTurnaround: 0,
			wantFurthest:   "JFK",
			wantRTO:        true,
			wantSimple:     true,
			wantDirections: []directionRange{
				{Outbound, segRange{0, 0}},
				{Inbound, segRange{1, 1}},
			},
		},
		{
			name: "turnaround at a connection is not simple",
			it: itinerary(
				seg("LH", locFRA, locBOS, 0, 8),
				seg("LH", locBOS, locJFK, 0, 13),
				seg("LH", locJFK, locFRA, 0, 18),
			),
			wantTurnaround: 1,
			wantFurthest:   "JFK",
			wantRTO:        true,
			wantSimple:     false,
			wantDirections: []directionRange{
				{Outbound, segRange{0, 1}},
				{Inbound, segRange{2, 2}},
			},
		},
		{
			name: "domestic points count for a domestic itinerary",
			it: itinerary(
				seg("LH", locFRA, locMUC, 0, 8),
				seg("LH", locMUC, locFRA, 3, 8),
			),
			wantTurnaround: 0,
			wantFurthest:   "MUC",
			wantRTO:        true,
			wantSimple:     true,
			wantDirections: []directionRange{
				{Outbound, segRange{0, 0}},
				{Inbound, segRange{1, 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := AnalyzeItinerary(tt.it, fromFRA())

			assert.Equal(t, tt.wantTurnaround, g.Turnaround)
			require.NotNil(t, g.Furthest)
			assert.Equal(t, tt.wantFurthest, g.Furthest.Code)
			assert.Equal(t, tt.wantRTO, g.ReturnsToOrigin)
			assert.Equal(t, tt.wantSimple, g.Simple)
			assert.True(t, g.Online)
			assert.Equal(t, tt.wantDirections, g.directions(len(tt.it.Segments)))
		})
	}
}

func TestAnalyzeItinerary_Interline(t *testing.T) {
	it := itinerary(
		seg("LH", locFRA, locLHR, 0, 8),
		seg("BA", locLHR, locJFK, 0, 12),
	)
	g := AnalyzeItinerary(it, fromFRA())
	assert.False(t, g.Online)
}

func TestGeometry_Stopovers(t *testing.T) {
	forced := seg("LH", locFRA, locMUC, 0, 8)
	forced.ForcedStopover = true
	forcedConn := seg("LH", locMUC, locLHR, 3, 8)
	forcedConn.ForcedConnection = true

	it := itinerary(
		forced,
		forcedConn,
		seg("LH", locLHR, locJFK, 5, 8),
		seg("LH", locJFK, locBOS, 5, 12),
	)
	g := AnalyzeItinerary(it, fromFRA())

	assert.True(t, g.IsStopover(0), "forced stopover")
	assert.False(t, g.IsStopover(1), "forced connection beats the two-day gap")
	assert.False(t, g.IsStopover(2), "two hour connection")
	assert.True(t, g.IsStopover(3), "journey end")
	assert.False(t, g.IsStopover(7))
}

func TestGeometry_DirectionOf(t *testing.T) {
	g := AnalyzeItinerary(roundTripLH(), fromFRA())
	assert.Equal(t, Outbound, g.DirectionOf(0))
	assert.Equal(t, Inbound, g.DirectionOf(1))

	text, err := Inbound.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "INBOUND", string(text))
}
