package yqyr

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// ChargeFarePath returns the YQ/YR charge of fp when valCxr validates the ticket.
// An empty valCxr means the itinerary's own validating carrier. A precalc-failed
// calculator charges zero.
func (c *Calculator) ChargeFarePath(ctx context.Context, fp *domain.FarePath, valCxr string) (decimal.Decimal, error) {
	if c.precalcFailed.Load() {
		return decimal.Zero, nil
	}
	apps, err := c.FindMatchingPaths(ctx, fp, valCxr)
	if err != nil {
		return decimal.Zero, err
	}
	return Total(apps, c.it.Flags), nil
}

// FindMatchingPaths returns the applications charged to fp, with percentage amounts
// resolved against the fare path. A precalc-failed calculator delegates to a fresh
// unbounded calculator built for fp alone.
func (c *Calculator) FindMatchingPaths(ctx context.Context, fp *domain.FarePath, valCxr string) ([]*Application, error) {
	if c.precalcFailed.Load() {
		if c.fallback {
			return nil, nil
		}
		return c.delegate(ctx, fp, valCxr)
	}

	vc, err := c.valCxr(valCxr)
	if err != nil {
		return nil, err
	}

	n := len(c.it.Segments)
	fareBasis := fp.FareBasisBySegment(n)
	codes := fp.BookingCodes(c.it)
	whole := segRange{0, n - 1}

	var out []*Application
	for _, bk := range vc.buckets {
		for _, sl := range bk.slices {
			p := c.selectPath(sl, fareBasis, codes, whole)
			if p == nil {
				continue
			}
			out = c.appendResolved(out, p.apps, whole, farePathAmounts{fp})
		}
	}
	return out, nil
}

// FindMatchingPathsShopping returns the applications falling on the fare market of
// ptf, checked against its fare basis, before any fare path exists.
func (c *Calculator) FindMatchingPathsShopping(ctx context.Context, valCxr string, ptf *domain.PaxTypeFare) ([]*Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.precalcFailed.Load() {
		return nil, nil
	}

	vc, err := c.valCxr(valCxr)
	if err != nil {
		return nil, err
	}

	n := len(c.it.Segments)
	market := segRange{max(ptf.FirstSeg, 0), min(ptf.LastSeg, n-1)}
	fareBasis := make([][]string, n)
	for idx := market.first; idx <= market.last; idx++ {
		fareBasis[idx] = []string{ptf.FareBasis}
	}
	codes := c.it.BookingCodes()

	var out []*Application
	for _, bk := range vc.buckets {
		for _, sl := range bk.slices {
			if sl.last < market.first || sl.first > market.last {
				continue
			}
			p := c.selectPath(sl, fareBasis, codes, market)
			if p == nil {
				continue
			}
			out = c.appendResolved(out, p.apps, market, paxTypeFareAmounts{ptf})
		}
	}
	return out, nil
}

// delegate answers for one fare path with a fresh calculator that has no budget.
func (c *Calculator) delegate(ctx context.Context, fp *domain.FarePath, valCxr string) ([]*Application, error) {
	cfg := c.cfg
	cfg.MaxApplications = 0
	cfg.LessLocking = false

	deps := c.deps
	deps.Governor = nil

	single := NewForFarePath(c.it, fp, cfg, deps)
	single.fallback = true
	if err := single.Process(ctx); err != nil {
		return nil, err
	}
	return single.FindMatchingPaths(ctx, fp, valCxr)
}

// selectPath returns the first path of sl whose conditional applications inside
// scope hold for the given fare bases and booking codes.
func (c *Calculator) selectPath(sl *feeSlice, fareBasis [][]string, codes []string, scope segRange) *Path {
	if len(sl.paths) == 0 {
		return nil
	}
	if c.mode == modeFarePath {
		return sl.paths[0]
	}
	for _, p := range sl.paths {
		if c.pathHolds(p, fareBasis, codes, scope) {
			return p
		}
	}
	return nil
}

func (c *Calculator) pathHolds(p *Path, fareBasis [][]string, codes []string, scope segRange) bool {
	for _, app := range p.apps {
		if !app.Conditional {
			continue
		}
		first, last := max(app.First, scope.first), min(app.Last, scope.last)
		if first > last {
			continue
		}
		if c.matcher.fb.MatchRange(app.Fee.FareBasis, fareBasis, first, last) != FareBasisAll {
			return false
		}
		if !bookingCodesHold(app.Fee, codes, first, last) {
			return false
		}
	}
	return true
}

func bookingCodesHold(fee *domain.FeeRecord, codes []string, first, last int) bool {
	allowed := fee.BookingCodes()
	if len(allowed) == 0 {
		return true
	}
	for idx := first; idx <= last; idx++ {
		if idx >= len(codes) || !slices.Contains(allowed, codes[idx]) {
			return false
		}
	}
	return true
}

// appendResolved appends the applications overlapping scope, resolving percentage
// amounts against fare. A percentage that cannot be converted is left out.
func (c *Calculator) appendResolved(out []*Application, apps []*Application, scope segRange, fare fareAmounts) []*Application {
	chargeCurrency := c.it.ChargeCurrency()
	for _, app := range apps {
		if app.Last < scope.first || app.First > scope.last {
			continue
		}
		if !app.Fee.IsPercentage() {
			out = append(out, app)
			continue
		}
		amount, err := percentageAmount(c.deps.Currency, app.Fee, fare, chargeCurrency)
		if err != nil {
			c.deps.Logger.Warn().
				Err(err).
				Str("carrier", app.Fee.Carrier).
				Str("tax_code", app.Fee.FeeCode()).
				Int64("seq", app.Fee.SeqNo).
				Msg("dropping percentage fee with unconvertible amount")
			continue
		}
		out = append(out, app.withAmount(amount))
	}
	return out
}
