package yqyr

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// bucket groups the slices computed for one (marketing carrier, fee code) pair.
type bucket struct {
	carrier string
	feeCode string
	slices  []*feeSlice

	// reusable is cleared when a record consulted the validating-carrier table, so
	// the bucket cannot be shared with another validating carrier
	reusable bool
}

// maxCategory identifies a fee application indicator class charged at most once.
type maxCategory int

const (
	outboundMax maxCategory = iota
	inboundMax
	journeyMax
	categoryCount
)

// categoryOf returns the max category of app, or false for per-occurrence records.
// Unknown indicators are reported as an error.
func categoryOf(app *Application) (maxCategory, bool, error) {
	switch app.FeeApplInd() {
	case domain.FeeApplPerOccurrence:
		return 0, false, nil
	case domain.FeeApplPerDirectionMax:
		if app.Direction == Inbound {
			return inboundMax, true, nil
		}
		return outboundMax, true, nil
	case domain.FeeApplPerJourneyMax:
		return journeyMax, true, nil
	default:
		return 0, false, fmt.Errorf("%w: %q on %s seq %d", domain.ErrUnknownFeeApplIndicator,
			string(rune(app.FeeApplInd())), app.Fee.FeeCode(), app.Fee.SeqNo)
	}
}

// lowerBound returns an amount no actual charge of this bucket can be below: the
// cheapest per-occurrence total of every slice plus, per max category, the cheapest
// path maximum of the first slice where that category shows up. A category left out
// of the charge by origin-based round-trip pricing is left out here too.
func (b *bucket) lowerBound(flags domain.RequestFlags) (decimal.Decimal, error) {
	total := decimal.Zero
	var counted [categoryCount]bool
	if c, ok := suppressedCategory(flags); ok {
		counted[c] = true
	}

	for _, sl := range b.slices {
		if len(sl.paths) == 0 {
			continue
		}

		cheapest := sl.paths[0].Amount()
		var catMin [categoryCount]decimal.Decimal
		first := true

		for _, p := range sl.paths {
			if p.Amount().LessThan(cheapest) {
				cheapest = p.Amount()
			}

			var catMax [categoryCount]decimal.Decimal
			for _, app := range p.apps {
				c, isMax, err := categoryOf(app)
				if err != nil {
					return decimal.Zero, err
				}
				if isMax && app.Amount.GreaterThan(catMax[c]) {
					catMax[c] = app.Amount
				}
			}
			for c := range catMax {
				if first || catMax[c].LessThan(catMin[c]) {
					catMin[c] = catMax[c]
				}
			}
			first = false
		}

		total = total.Add(cheapest)
		for c := range catMin {
			if !counted[c] && catMin[c].IsPositive() {
				total = total.Add(catMin[c])
				counted[c] = true
			}
		}
	}
	return total, nil
}

// Total aggregates matched applications into a charge. Per-occurrence amounts are
// summed; per-direction and per-journey amounts contribute their maximum once per
// (carrier, fee code) bucket, so a YQ and a YR maximum are both charged. Unknown
// indicators contribute nothing. In origin-based round-trip pricing the maximum of
// the leg already priced is left out.
func Total(apps []*Application, flags domain.RequestFlags) decimal.Decimal {
	total := decimal.Zero
	maxes := make(map[bucketKey]*[categoryCount]decimal.Decimal)

	for _, app := range apps {
		c, isMax, err := categoryOf(app)
		if err != nil {
			continue
		}
		if !isMax {
			if app.Amount.IsPositive() {
				total = total.Add(app.Amount)
			}
			continue
		}
		key := app.bucketKey()
		m, ok := maxes[key]
		if !ok {
			m = new([categoryCount]decimal.Decimal)
			maxes[key] = m
		}
		if app.Amount.GreaterThan(m[c]) {
			m[c] = app.Amount
		}
	}

	suppressed, suppress := suppressedCategory(flags)
	for _, m := range maxes {
		for c, amount := range m {
			if suppress && maxCategory(c) == suppressed {
				continue
			}
			total = total.Add(amount)
		}
	}
	return total
}

// suppressedCategory returns the per-direction category origin-based round-trip
// pricing leaves out: the leg whose departure is already fixed.
func suppressedCategory(flags domain.RequestFlags) (maxCategory, bool) {
	if !flags.OriginBasedRT {
		return 0, false
	}
	if flags.OutboundFixed {
		return outboundMax, true
	}
	return inboundMax, true
}
