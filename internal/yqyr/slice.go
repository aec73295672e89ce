package yqyr

import (
	"github.com/rs/zerolog"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// feeSlice is a maximal run of segments marketed by one carrier within one direction,
// with every alternative path of fee applications covering it.
type feeSlice struct {
	segRange
	direction Direction
	paths     []*Path
}

// findSlices returns the carrier-contiguous runs inside r.
func findSlices(it *domain.Itinerary, carrier string, r segRange) []segRange {
	var result []segRange
	start := -1
	for idx := r.first; idx <= r.last; idx++ {
		seg := it.Segments[idx]
		owned := seg.IsAir() && seg.MarketingCarrier == carrier
		switch {
		case owned && start < 0:
			start = idx
		case !owned && start >= 0:
			result = append(result, segRange{start, idx - 1})
			start = -1
		}
	}
	if start >= 0 {
		result = append(result, segRange{start, r.last})
	}
	return result
}

// pricing carries what an application needs to compute its amount.
type pricing struct {
	conv           domain.CurrencyConverter
	baseCurrency   string
	chargeCurrency string
}

// sliceSearch enumerates the fee paths of one slice. It is single-use and not safe
// for concurrent use.
type sliceSearch struct {
	m         *matcher
	price     pricing
	budget    *budget
	diag      *Diagnostics
	logger    zerolog.Logger
	valCxr    string
	direction Direction

	fees  []*domain.FeeRecord
	never []bool
	memo  map[segRange][]*Path
}

func newSliceSearch(m *matcher, price pricing, b *budget, diag *Diagnostics, logger zerolog.Logger,
	valCxr string, direction Direction, fees []*domain.FeeRecord) *sliceSearch {
	return &sliceSearch{
		m:         m,
		price:     price,
		budget:    b,
		diag:      diag,
		logger:    logger,
		valCxr:    valCxr,
		direction: direction,
		fees:      fees,
		never:     make([]bool, len(fees)),
		memo:      make(map[segRange][]*Path),
	}
}

// solve returns every maximal path of applications covering [start, end].
func (s *sliceSearch) solve(start, end int) ([]*Path, error) {
	key := segRange{start, end}
	if paths, ok := s.memo[key]; ok {
		return paths, nil
	}

	var results []*Path
	acc := emptyPath

	for start <= end {
		committed := false

		for i := 0; i < len(s.fees) && !committed; i++ {
			if s.never[i] {
				continue
			}
			fee := s.fees[i]
			trialEnd := end
			if !fee.IsPortion() {
				trialEnd = start
			}

		trial:
			for {
				result, reason := s.m.match(fee, s.valCxr, start, trialEnd)
				s.diag.Record(fee, start, trialEnd, result, reason)

				switch result {
				case Never:
					s.never[i] = true

				case PFailed:
					if trialEnd > start {
						trialEnd--
						continue trial
					}

				case SConditionally, PConditionally:
					app, ok := s.application(i, start, trialEnd, true)
					if !ok {
						break trial
					}
					forked, err := s.fork(acc, app, trialEnd+1, end)
					if err != nil {
						return nil, err
					}
					results = append(results, forked...)
					if result == PConditionally && trialEnd > start {
						trialEnd--
						continue trial
					}

				case Unconditionally:
					app, ok := s.application(i, start, trialEnd, false)
					if !ok {
						break trial
					}
					acc = acc.Extend(app)
					start = trialEnd + 1
					committed = true
				}
				break
			}
		}

		if !committed {
			start++
		}
	}

	results = append(results, acc)
	s.memo[key] = results
	return results, nil
}

// fork commits app on top of acc and combines it with every continuation of the
// remaining range.
func (s *sliceSearch) fork(acc *Path, app *Application, next, end int) ([]*Path, error) {
	continuations := []*Path{emptyPath}
	if next <= end {
		var err error
		continuations, err = s.solve(next, end)
		if err != nil {
			return nil, err
		}
	}

	if err := s.budget.consume(len(continuations)); err != nil {
		return nil, err
	}
	pathsGeneratedTotal.Add(float64(len(continuations)))

	head := acc.Extend(app)
	forked := make([]*Path, 0, len(continuations))
	for _, cont := range continuations {
		forked = append(forked, head.Concat(cont))
	}
	return forked, nil
}

// application builds the application of fee i over [first, last]. A record whose
// amount cannot be converted is dropped for the rest of the search.
func (s *sliceSearch) application(i, first, last int, conditional bool) (*Application, bool) {
	fee := s.fees[i]
	amount, err := fixedAmount(s.price.conv, fee, first, last, s.price.baseCurrency, s.price.chargeCurrency)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("carrier", fee.Carrier).
			Str("tax_code", fee.FeeCode()).
			Int64("seq", fee.SeqNo).
			Msg("dropping fee record with unconvertible amount")
		s.never[i] = true
		return nil, false
	}
	return &Application{
		Fee:         fee,
		First:       first,
		Last:        last,
		Amount:      amount,
		Currency:    s.price.chargeCurrency,
		Direction:   s.direction,
		Conditional: conditional,
	}, true
}
