package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/logger"
	"github.com/flight-search/yqyr-surcharge-engine/internal/yqyr"
)

// QuoteUseCase defines the surcharge quote operation.
type QuoteUseCase interface {
	// Quote builds the calculators of one transaction and answers every query of req.
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
}

type quoteUseCase struct {
	deps    yqyr.Dependencies
	calcCfg yqyr.Config
	timeout time.Duration
	newID   func() string
}

// NewQuoteUseCase creates a QuoteUseCase. If config is nil, defaults are used.
func NewQuoteUseCase(deps yqyr.Dependencies, calcCfg yqyr.Config, config *Config) QuoteUseCase {
	cfg := DefaultConfig()
	if config != nil && config.Timeout > 0 {
		cfg.Timeout = config.Timeout
	}
	return &quoteUseCase{
		deps:    deps,
		calcCfg: calcCfg,
		timeout: cfg.Timeout,
		newID:   uuid.NewString,
	}
}

// Quote implements QuoteUseCase.Quote. Passenger types are priced concurrently; the
// first failure cancels the rest.
func (uc *quoteUseCase) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	start := time.Now()

	if err := ValidateQuoteRequest(&req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	txID := uc.newID()
	txLog := logger.ForTransaction(uc.deps.Logger, txID)
	deps := uc.deps
	deps.Logger = txLog

	factory := yqyr.NewFactory(req.Itinerary, uc.calcCfg, deps)
	results := make([]PaxTypeQuote, len(req.PaxTypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, paxType := range req.PaxTypes {
		g.Go(func() error {
			q, err := uc.quotePaxType(gctx, factory, &req, paxType)
			if err != nil {
				return fmt.Errorf("passenger type %s: %w", paxType, err)
			}
			results[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		txLog.Error().Err(err).Msg("surcharge quote failed")
		return nil, err
	}

	resp := &QuoteResponse{
		TransactionID: txID,
		Currency:      req.Itinerary.ChargeCurrency(),
		PaxTypes:      results,
		Metadata: QuoteMetadata{
			Calculators: factory.Len(),
			DurationMs:  time.Since(start).Milliseconds(),
		},
	}
	logQuote(txLog, resp)
	return resp, nil
}

func (uc *quoteUseCase) quotePaxType(ctx context.Context, factory *yqyr.Factory, req *QuoteRequest, paxType string) (PaxTypeQuote, error) {
	q := PaxTypeQuote{PaxType: paxType}

	// One calculator per fare market path; the first one answers shopping queries
	// and fare paths that name no fare market path.
	fmps := req.FareMarketPaths
	if len(fmps) == 0 {
		fmps = []*domain.FareMarketPath{nil}
	}
	calcs := make(map[string]*yqyr.Calculator, len(fmps))
	var primary *yqyr.Calculator
	for i, fmp := range fmps {
		calc, err := factory.Get(ctx, paxType, fmp)
		if err != nil {
			return q, err
		}
		if i == 0 {
			primary = calc
		}
		if fmp == nil {
			continue
		}
		calcs[fmp.ID] = calc
		q.FareMarketPaths = append(q.FareMarketPaths, FareMarketPathQuote{
			ID:            fmp.ID,
			LowerBound:    calc.LowerBound(),
			PrecalcFailed: calc.PreCalcFailed(),
		})
	}

	q.LowerBound = primary.LowerBound()
	q.PrecalcFailed = primary.PreCalcFailed()
	for _, fq := range q.FareMarketPaths {
		if fq.LowerBound.LessThan(q.LowerBound) {
			q.LowerBound = fq.LowerBound
		}
		q.PrecalcFailed = q.PrecalcFailed || fq.PrecalcFailed
	}

	for _, cxr := range primary.ValidatingCarriers() {
		lb, err := primary.ValidatingCarrierLowerBound(cxr)
		if err != nil {
			return q, err
		}
		concurring, err := primary.ConcurringCarriers(cxr)
		if err != nil {
			return q, err
		}
		q.ValidatingCarriers = append(q.ValidatingCarriers, ValidatingCarrierQuote{
			Carrier:    cxr,
			LowerBound: lb,
			Concurring: concurring,
		})
	}

	q.FarePaths = []FarePathQuote{}
	for _, fp := range req.FarePaths {
		if fp.PaxType != paxType {
			continue
		}
		calc := primary
		if c, ok := calcs[fp.FareMarketPathID]; ok {
			calc = c
		}
		fq, err := chargeFarePath(ctx, calc, fp, req)
		if err != nil {
			return q, err
		}
		q.FarePaths = append(q.FarePaths, fq)
	}

	for _, ptf := range req.PaxTypeFares {
		if ptf.PaxType != "" && ptf.PaxType != paxType {
			continue
		}
		apps, err := primary.FindMatchingPathsShopping(ctx, req.ValidatingCarrier, ptf)
		if err != nil {
			return q, err
		}
		q.Shopping = append(q.Shopping, ShoppingQuote{
			FareBasis: ptf.FareBasis,
			FirstSeg:  ptf.FirstSeg,
			LastSeg:   ptf.LastSeg,
			Total:     yqyr.Total(apps, req.Itinerary.Flags),
			Fees:      toAppliedFees(apps),
		})
	}

	return q, nil
}

// chargeFarePath prices fp from its matched fees. A calculator that ran out of path
// budget answers through its fare-path fallback, so the charge always agrees with
// the fees listed next to it, unlike ChargeFarePath which reports zero.
func chargeFarePath(ctx context.Context, calc *yqyr.Calculator, fp *domain.FarePath, req *QuoteRequest) (FarePathQuote, error) {
	apps, err := calc.FindMatchingPaths(ctx, fp, req.ValidatingCarrier)
	if err != nil {
		return FarePathQuote{}, fmt.Errorf("fare path %s: %w", fp.ID, err)
	}
	return FarePathQuote{
		ID:     fp.ID,
		Charge: yqyr.Total(apps, req.Itinerary.Flags),
		Fees:   toAppliedFees(apps),
	}, nil
}

func toAppliedFees(apps []*yqyr.Application) []AppliedFee {
	out := make([]AppliedFee, 0, len(apps))
	for _, app := range apps {
		out = append(out, AppliedFee{
			Carrier:     app.Fee.Carrier,
			TaxCode:     app.Fee.TaxCode,
			SubCode:     app.Fee.SubCode,
			SeqNo:       app.Fee.SeqNo,
			FirstSeg:    app.First,
			LastSeg:     app.Last,
			Direction:   app.Direction.String(),
			FeeApplInd:  strings.TrimSpace(string(rune(app.FeeApplInd()))),
			Amount:      app.Amount,
			Currency:    app.Currency,
			Conditional: app.Conditional,
		})
	}
	return out
}

func logQuote(log zerolog.Logger, resp *QuoteResponse) {
	ev := log.Debug().
		Int("calculators", resp.Metadata.Calculators).
		Int64("duration_ms", resp.Metadata.DurationMs)
	for _, q := range resp.PaxTypes {
		ev = ev.Str("lower_bound_"+strings.ToLower(q.PaxType), q.LowerBound.String())
	}
	ev.Msg("surcharge quote complete")
}

// ValidateQuoteRequest checks req and fills in the default passenger type.
func ValidateQuoteRequest(req *QuoteRequest) error {
	it := req.Itinerary
	if it == nil || len(it.Segments) == 0 {
		return invalid("itinerary needs at least one segment")
	}
	for i, seg := range it.Segments {
		if seg == nil || seg.Origin == nil || seg.Destination == nil {
			return invalid("segment %d: origin and destination are required", i)
		}
		if seg.IsAir() && seg.Departure.IsZero() {
			return invalid("segment %d: departure is required", i)
		}
		if i > 0 && !seg.Departure.IsZero() && seg.Departure.Before(it.Segments[i-1].Departure) {
			return invalid("segment %d departs before segment %d", i, i-1)
		}
	}
	if it.ChargeCurrency() == "" {
		return invalid("payment currency is required")
	}

	if len(req.PaxTypes) == 0 {
		req.PaxTypes = []string{DefaultPaxType}
	}
	seen := make(map[string]bool, len(req.PaxTypes))
	for _, pt := range req.PaxTypes {
		if pt == "" {
			return invalid("passenger type must not be blank")
		}
		if seen[pt] {
			return invalid("passenger type %s listed twice", pt)
		}
		seen[pt] = true
	}

	n := len(it.Segments)
	fmpIDs := make(map[string]bool, len(req.FareMarketPaths))
	for _, fmp := range req.FareMarketPaths {
		if fmp == nil || fmp.ID == "" {
			return invalid("fare market path id is required")
		}
		if fmpIDs[fmp.ID] {
			return invalid("fare market path %s listed twice", fmp.ID)
		}
		fmpIDs[fmp.ID] = true
		for _, fm := range fmp.Markets {
			if !validRange(fm.FirstSeg, fm.LastSeg, n) {
				return invalid("fare market path %s: market %d-%d is outside the itinerary", fmp.ID, fm.FirstSeg, fm.LastSeg)
			}
		}
	}

	for _, fp := range req.FarePaths {
		if fp == nil || fp.ID == "" {
			return invalid("fare path id is required")
		}
		if fp.PaxType == "" && len(req.PaxTypes) == 1 {
			fp.PaxType = req.PaxTypes[0]
		}
		if !seen[fp.PaxType] {
			return invalid("fare path %s: passenger type %q is not quoted", fp.ID, fp.PaxType)
		}
		if fp.FareMarketPathID != "" && !fmpIDs[fp.FareMarketPathID] {
			return invalid("fare path %s: unknown fare market path %s", fp.ID, fp.FareMarketPathID)
		}
		for _, fu := range fp.Usages {
			if fu == nil {
				return invalid("fare path %s: empty fare usage", fp.ID)
			}
			for _, idx := range fu.SegmentIndices {
				if idx < 0 || idx >= n {
					return invalid("fare path %s: segment %d is outside the itinerary", fp.ID, idx)
				}
			}
		}
	}

	for i, ptf := range req.PaxTypeFares {
		if ptf == nil || ptf.FareBasis == "" {
			return invalid("pax type fare %d: fare basis is required", i)
		}
		if !validRange(ptf.FirstSeg, ptf.LastSeg, n) {
			return invalid("pax type fare %d: segments %d-%d are outside the itinerary", i, ptf.FirstSeg, ptf.LastSeg)
		}
	}

	if req.ValidatingCarrier != "" && len(it.ValidatingCarriers) > 0 && !slices.Contains(it.ValidatingCarriers, req.ValidatingCarrier) {
		return invalid("validating carrier %s is not a candidate of the itinerary", req.ValidatingCarrier)
	}
	return nil
}

func validRange(first, last, n int) bool {
	return first >= 0 && first <= last && last < n
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidRequest)
}
