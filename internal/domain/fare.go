package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// FareUsage is one priced fare component of a fare path.
type FareUsage struct {
	// FareBasis is the fare basis code, optionally with ticket designators (e.g., "YOW/CH")
	FareBasis string `json:"fareBasis"`

	// SegmentIndices are the zero-based itinerary segments the fare covers
	SegmentIndices []int `json:"segmentIndices"`

	// RebookedCodes maps a segment index to the booking code the fare was rebooked into
	RebookedCodes map[int]string `json:"rebookedCodes,omitempty"`
}

// FarePath is one concrete priced solution for a passenger type.
type FarePath struct {
	ID      string       `json:"id"`
	PaxType string       `json:"paxType"`
	Usages  []*FareUsage `json:"usages"`

	// FareMarketPathID names the fare market path the fare path was built on, if any
	FareMarketPathID string `json:"fareMarketPathId,omitempty"`

	// TotalNUCAmount is the fare total in the calculation currency
	TotalNUCAmount decimal.Decimal `json:"totalNucAmount"`

	// CalculationCurrency is the currency TotalNUCAmount is expressed in (usually "NUC")
	CalculationCurrency string `json:"calculationCurrency"`

	// BaseFareCurrency is the currency of the fare's origin country
	BaseFareCurrency string `json:"baseFareCurrency"`
}

// FareBasisBySegment returns, per segment, the fare basis covering it. Segments no
// fare usage covers get no entry.
func (fp *FarePath) FareBasisBySegment(segmentCount int) [][]string {
	result := make([][]string, segmentCount)
	for _, fu := range fp.Usages {
		for _, idx := range fu.SegmentIndices {
			if idx < 0 || idx >= segmentCount {
				continue
			}
			result[idx] = append(result[idx], fu.FareBasis)
		}
	}
	return result
}

// BookingCodes returns the effective booking code per segment, applying rebooked
// codes over the itinerary's booked codes.
func (fp *FarePath) BookingCodes(it *Itinerary) []string {
	result := it.BookingCodes()
	if fp == nil {
		return result
	}
	for _, fu := range fp.Usages {
		for idx, code := range fu.RebookedCodes {
			if idx >= 0 && idx < len(result) && code != "" {
				result[idx] = code
			}
		}
	}
	return result
}

// FareMarket is a range of segments priced together, with the fare bases that were
// found for it.
type FareMarket struct {
	FirstSeg  int      `json:"firstSeg"`
	LastSeg   int      `json:"lastSeg"`
	FareBases []string `json:"fareBases"`
}

// Covers reports whether idx lies inside the market.
func (fm FareMarket) Covers(idx int) bool {
	return idx >= fm.FirstSeg && idx <= fm.LastSeg
}

// FareMarketPath is one way of splitting the itinerary into fare markets.
type FareMarketPath struct {
	ID      string       `json:"id"`
	Markets []FareMarket `json:"markets"`
}

// FareBasisBySegment merges the fare bases of every market covering each segment.
func (p *FareMarketPath) FareBasisBySegment(segmentCount int) [][]string {
	result := make([][]string, segmentCount)
	for _, fm := range p.Markets {
		for idx := max(fm.FirstSeg, 0); idx <= fm.LastSeg && idx < segmentCount; idx++ {
			result[idx] = appendUnique(result[idx], fm.FareBases...)
		}
	}
	return result
}

// PaxTypeFare is a single fare offered on one fare market, used by shopping queries
// before any fare path exists.
type PaxTypeFare struct {
	PaxType   string `json:"paxType"`
	FareBasis string `json:"fareBasis"`
	FirstSeg  int    `json:"firstSeg"`
	LastSeg   int    `json:"lastSeg"`

	NUCAmount           decimal.Decimal `json:"nucAmount"`
	CalculationCurrency string          `json:"calculationCurrency"`
	BaseFareCurrency    string          `json:"baseFareCurrency"`
}

// Covers reports whether idx lies inside the fare's market.
func (p *PaxTypeFare) Covers(idx int) bool {
	return idx >= p.FirstSeg && idx <= p.LastSeg
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
