package yqyr

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// valCxrContext holds the processing result for one validating carrier.
type valCxrContext struct {
	carrier    string
	concurring []string
	buckets    []*bucket
	lowerBound decimal.Decimal
}

// validatingCarriers returns the candidate validating carriers of the itinerary,
// defaulting to the first marketing carrier.
func validatingCarriers(it *domain.Itinerary) []string {
	if len(it.ValidatingCarriers) > 0 {
		return it.ValidatingCarriers
	}
	if carriers := it.MarketingCarriers(); len(carriers) > 0 {
		return carriers[:1]
	}
	return nil
}

// concurringCarriers returns the marketing carriers whose fees apply when valCxr
// validates the ticket.
func concurringCarriers(ctx context.Context, ds domain.SurchargeDataSource, it *domain.Itinerary, valCxr string) ([]string, error) {
	rec, err := ds.NonConcurrence(ctx, valCxr)
	if err != nil {
		return nil, fmt.Errorf("non-concurrence %s: %w", valCxr, err)
	}

	var result []string
	if rec == nil {
		if it.HasMarketingCarrier(valCxr) {
			result = append(result, valCxr)
		}
		return result, nil
	}

	if rec.SelfAppl.Normalize() != domain.IndicatorX && it.HasMarketingCarrier(valCxr) {
		result = append(result, valCxr)
	}

	var rows []domain.CarrierApplEntry
	if rec.CarrierApplTblItemNo != 0 {
		rows, err = ds.CarrierApplication(ctx, rec.CarrierApplTblItemNo)
		if err != nil {
			return nil, fmt.Errorf("table 190 item %d: %w", rec.CarrierApplTblItemNo, err)
		}
	}

	for _, cxr := range it.MarketingCarriers() {
		if cxr == valCxr {
			continue
		}
		if rec.CarrierApplTblItemNo == 0 || validateT190(rows, cxr) {
			result = append(result, cxr)
		}
	}
	return result, nil
}

// carrierOrder flattens the concurring carriers of every validating carrier in
// first-seen order and moves own to the front.
func carrierOrder(contexts []*valCxrContext, own string) []string {
	seen := make(map[string]bool)
	var order []string
	for _, vc := range contexts {
		for _, cxr := range vc.concurring {
			if seen[cxr] {
				continue
			}
			seen[cxr] = true
			order = append(order, cxr)
		}
	}

	for i, cxr := range order {
		if cxr == own && i > 0 {
			copy(order[1:i+1], order[:i])
			order[0] = own
			break
		}
	}
	return order
}
