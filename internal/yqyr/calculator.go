package yqyr

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/geo"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/logger"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/timeutil"
)

// Config tunes a calculator.
type Config struct {
	// MaxApplications bounds the paths created while forking; zero or less is unbounded
	MaxApplications int

	// MemoryCheckInterval is the number of created paths between memory governor checks
	MemoryCheckInterval int

	// LessLocking drops the run-once guard of Process. The caller must then make sure
	// each calculator is processed by one goroutine at a time.
	LessLocking bool

	// Skip lists optional validations to leave out
	Skip Validation

	// BaseCurrency is the base fare currency fixed amounts are converted through
	BaseCurrency string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxApplications:     200000,
		MemoryCheckInterval: 10000,
	}
}

// Dependencies are the collaborators a calculator consumes.
type Dependencies struct {
	DataSource domain.SurchargeDataSource
	Currency   domain.CurrencyConverter
	Mileage    domain.MileageProvider

	// Governor is optional
	Governor domain.MemoryGovernor

	// Diagnostics is optional; nil disables the trace
	Diagnostics *Diagnostics

	// Clock supplies the ticketing date when the itinerary has none
	Clock timeutil.Clock

	Logger zerolog.Logger
}

// withDefaults fills in the clock and mileage provider when unset.
func (d Dependencies) withDefaults() Dependencies {
	if d.Clock == nil {
		d.Clock = timeutil.NewRealClock()
	}
	if d.Mileage == nil {
		d.Mileage = geo.NewGreatCircle()
	}
	return d
}

type calcMode int

const (
	modeFareMarketPath calcMode = iota
	modeFarePath
	modeShopping
)

// Calculator computes the YQ/YR paths of one itinerary for one passenger type and
// answers charge and lower-bound queries. Process must run before any query.
type Calculator struct {
	cfg  Config
	deps Dependencies
	mode calcMode

	it         *domain.Itinerary
	paxType    string
	farePath   *domain.FarePath
	concurring map[string][]string
	fallback   bool

	geometry Geometry
	matcher  *matcher

	once       sync.Once
	processErr error

	processed     atomic.Bool
	precalcFailed atomic.Bool

	valCxrs    []*valCxrContext
	byCarrier  map[string]*valCxrContext
	lowerBound decimal.Decimal
}

// New creates a calculator for every fare path built on fmp. A nil fmp means the
// fare bases are unknown and every fare-basis condition is soft passed.
func New(it *domain.Itinerary, paxType string, fmp *domain.FareMarketPath, cfg Config, deps Dependencies) *Calculator {
	var fareBasis [][]string
	if fmp != nil {
		fareBasis = fmp.FareBasisBySegment(len(it.Segments))
	}
	c := newCalculator(it, paxType, cfg, deps, modeFareMarketPath)
	c.setFareBasis(fareBasis, it.Segments)
	return c
}

// NewForFarePath creates a calculator for exactly one fare path.
func NewForFarePath(it *domain.Itinerary, fp *domain.FarePath, cfg Config, deps Dependencies) *Calculator {
	if cfg.BaseCurrency == "" {
		cfg.BaseCurrency = fp.BaseFareCurrency
	}
	c := newCalculator(it, fp.PaxType, cfg, deps, modeFarePath)
	c.farePath = fp
	c.setFareBasis(fp.FareBasisBySegment(len(it.Segments)), it.Segments)
	c.matcher.bookingCodes = fp.BookingCodes(it)
	return c
}

// NewForShopping creates a calculator with precomputed concurring carriers per
// validating carrier. Validating carriers missing from concurring are looked up.
func NewForShopping(it *domain.Itinerary, paxType string, concurring map[string][]string, cfg Config, deps Dependencies) *Calculator {
	c := newCalculator(it, paxType, cfg, deps, modeShopping)
	c.concurring = concurring
	c.setFareBasis(nil, it.Segments)
	return c
}

func newCalculator(it *domain.Itinerary, paxType string, cfg Config, deps Dependencies, mode calcMode) *Calculator {
	deps = deps.withDefaults()
	ticketingDate := it.TicketingDate
	if ticketingDate.IsZero() {
		ticketingDate = timeutil.Today(deps.Clock)
	}

	geometry := AnalyzeItinerary(it, deps.Mileage)
	return &Calculator{
		cfg:      cfg,
		deps:     deps,
		mode:     mode,
		it:       it,
		paxType:  paxType,
		geometry: geometry,
		matcher: &matcher{
			it:            it,
			geometry:      geometry,
			paxType:       paxType,
			ticketingDate: ticketingDate,
			skip:          cfg.Skip,
			bookingCodes:  it.BookingCodes(),
			softpassRBD:   shouldSoftpassRBD(it.Flags),
			ref:           newRefData(),
			fb:            NewFareBasisMatcher(),
		},
	}
}

func (c *Calculator) setFareBasis(fareBasis [][]string, segments []*domain.TravelSegment) {
	if fareBasis == nil {
		fareBasis = make([][]string, len(segments))
	}
	c.matcher.fareBasis = fareBasis
	c.matcher.designators, c.matcher.fareBasisKnown = hasDesignator(fareBasis)
}

// Geometry returns the analyzed itinerary shape.
func (c *Calculator) Geometry() Geometry {
	return c.geometry
}

// FareBasisMatcher exposes the calculator's fare-basis cache.
func (c *Calculator) FareBasisMatcher() *FareBasisMatcher {
	return c.matcher.fb
}

// Process computes the fee paths of every validating carrier. By default it runs
// once per calculator and later calls return the first result. Running out of path
// budget is not an error: the calculator is marked precalc-failed instead.
func (c *Calculator) Process(ctx context.Context) error {
	if c.cfg.LessLocking {
		return c.process(ctx)
	}
	c.once.Do(func() {
		c.processErr = c.process(ctx)
	})
	return c.processErr
}

func (c *Calculator) process(ctx context.Context) error {
	if c.precalcFailed.Load() {
		return nil
	}

	start := time.Now()
	defer func() {
		processDuration.Observe(time.Since(start).Seconds())
	}()

	log := logger.ForPaxType(c.deps.Logger, c.paxType).With().
		Int("segments", len(c.it.Segments)).
		Logger()

	err := c.run(ctx)
	switch {
	case errors.Is(err, domain.ErrMemoryOverused):
		log.Warn().Err(err).Msg("yqyr precalculation aborted")
		calculationsTotal.WithLabelValues("precalc_failed").Inc()
		c.valCxrs = nil
		c.byCarrier = nil
		c.lowerBound = decimal.Zero
		c.precalcFailed.Store(true)
		c.processed.Store(true)
		return nil

	case err != nil:
		calculationsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrDataUnavailable) {
			log.Error().Err(err).Msg("yqyr filing data unavailable")
		}
		return err
	}

	calculationsTotal.WithLabelValues("ok").Inc()
	c.processed.Store(true)
	log.Debug().
		Str("lower_bound", c.lowerBound.String()).
		Int("validating_carriers", len(c.valCxrs)).
		Dur("duration", time.Since(start)).
		Msg("yqyr precalculation done")
	return nil
}

type bucketKey struct {
	carrier, feeCode string
}

func (c *Calculator) run(ctx context.Context) error {
	var contexts []*valCxrContext
	for _, valCxr := range validatingCarriers(c.it) {
		concurring, err := c.concurringFor(ctx, valCxr)
		if err != nil {
			return err
		}
		c.deps.Diagnostics.Carriers(valCxr, concurring)
		contexts = append(contexts, &valCxrContext{carrier: valCxr, concurring: concurring})
	}

	fees := make(map[string][]*domain.FeeRecord)
	ref := newRefData()
	for _, cxr := range carrierOrder(contexts, c.it.ValidatingCarrier()) {
		if err := ctx.Err(); err != nil {
			return err
		}
		list, err := c.deps.DataSource.FeesByCarrier(ctx, cxr)
		if err != nil {
			return dataError("fees "+cxr, err)
		}
		fees[cxr] = list
		if err := c.loadReferences(ctx, list, ref); err != nil {
			return err
		}
	}
	c.matcher.ref = ref

	b := newBudget(c.cfg.MaxApplications, c.cfg.MemoryCheckInterval, c.deps.Governor)
	shared := make(map[bucketKey]*bucket)
	lowest := decimal.Zero

	for i, vc := range contexts {
		total := decimal.Zero
		for _, cxr := range vc.concurring {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, group := range groupByFeeCode(fees[cxr]) {
				key := bucketKey{cxr, group.code}
				bk, ok := shared[key]
				if !ok {
					var err error
					bk, err = c.buildBucket(vc.carrier, cxr, group, b)
					if err != nil {
						return err
					}
					if bk.reusable {
						shared[key] = bk
					}
				}

				lb, err := bk.lowerBound(c.it.Flags)
				if err != nil {
					return err
				}
				c.deps.Diagnostics.Bucket(vc.carrier, bk, lb.String())
				total = total.Add(lb)
				vc.buckets = append(vc.buckets, bk)
			}
		}
		vc.lowerBound = total
		if i == 0 || total.LessThan(lowest) {
			lowest = total
		}
	}

	c.valCxrs = contexts
	c.byCarrier = make(map[string]*valCxrContext, len(contexts))
	for _, vc := range contexts {
		c.byCarrier[vc.carrier] = vc
	}
	c.lowerBound = lowest
	return nil
}

func (c *Calculator) concurringFor(ctx context.Context, valCxr string) ([]string, error) {
	if list, ok := c.concurring[valCxr]; ok {
		return list, nil
	}
	list, err := concurringCarriers(ctx, c.deps.DataSource, c.it, valCxr)
	if err != nil {
		return nil, dataError("concurring carriers "+valCxr, err)
	}
	return list, nil
}

// loadReferences fetches the table 186/190 items and zones the records refer to.
func (c *Calculator) loadReferences(ctx context.Context, fees []*domain.FeeRecord, ref *refData) error {
	ds := c.deps.DataSource
	for _, fee := range fees {
		if item := fee.CarrierFltTblItemNo; item != 0 {
			if _, ok := ref.t186[item]; !ok {
				rows, err := ds.CarrierFlights(ctx, item)
				if err != nil {
					return dataError(fmt.Sprintf("table 186 item %d", item), err)
				}
				ref.t186[item] = rows
			}
		}
		if item := fee.ValCxrTblItemNo; item != 0 {
			if _, ok := ref.t190[item]; !ok {
				rows, err := ds.CarrierApplication(ctx, item)
				if err != nil {
					return dataError(fmt.Sprintf("table 190 item %d", item), err)
				}
				ref.t190[item] = rows
			}
		}
		for _, key := range []domain.LocKey{
			fee.JourneyLoc1, fee.JourneyLoc2,
			fee.SectorPortionLoc1, fee.SectorPortionLoc2,
			fee.ViaLoc, fee.WhollyWithinLoc,
			fee.PosLoc, fee.PotLoc,
		} {
			if !key.IsZone() || key.IsBlank() {
				continue
			}
			zk := zoneKey{fee.Vendor, key.Code}
			if _, ok := ref.zones[zk]; ok {
				continue
			}
			members, err := ds.Zone(ctx, fee.Vendor, key.Code)
			if err != nil {
				return dataError("zone "+key.Code, err)
			}
			ref.zones[zk] = members
		}
	}
	return nil
}

type feeGroup struct {
	code string
	fees []*domain.FeeRecord
}

// groupByFeeCode splits a sorted fee list by fee code, keeping record order.
func groupByFeeCode(fees []*domain.FeeRecord) []feeGroup {
	var groups []feeGroup
	index := make(map[string]int)
	for _, fee := range fees {
		code := fee.FeeCode()
		i, ok := index[code]
		if !ok {
			i = len(groups)
			index[code] = i
			groups = append(groups, feeGroup{code: code})
		}
		groups[i].fees = append(groups[i].fees, fee)
	}
	return groups
}

func (c *Calculator) buildBucket(valCxr, carrier string, group feeGroup, b *budget) (*bucket, error) {
	bk := &bucket{carrier: carrier, feeCode: group.code, reusable: true}
	for _, fee := range group.fees {
		if fee.ValCxrTblItemNo != 0 {
			bk.reusable = false
			break
		}
	}

	price := pricing{
		conv:           c.deps.Currency,
		baseCurrency:   c.cfg.BaseCurrency,
		chargeCurrency: c.it.ChargeCurrency(),
	}
	log := logger.ForCarrier(c.deps.Logger, carrier, group.code)

	for _, dr := range c.geometry.directions(len(c.it.Segments)) {
		for _, r := range findSlices(c.it, carrier, dr.segRange) {
			search := newSliceSearch(c.matcher, price, b, c.deps.Diagnostics, log, valCxr, dr.direction, group.fees)
			paths, err := search.solve(r.first, r.last)
			if err != nil {
				return nil, err
			}
			if c.mode == modeFarePath && len(paths) > 1 {
				paths = paths[:1]
			}
			bk.slices = append(bk.slices, &feeSlice{segRange: r, direction: dr.direction, paths: paths})
		}
	}
	return bk, nil
}

// dataError marks err as a filing data failure unless it already is one.
func dataError(lookup string, err error) error {
	if errors.Is(err, domain.ErrDataUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", lookup, err)
	}
	return domain.NewDataError(lookup, err)
}

// PreCalcFailed reports whether Process ran out of path budget.
func (c *Calculator) PreCalcFailed() bool {
	return c.precalcFailed.Load()
}

// LowerBound returns the lowest charge any fare path can have, over all validating
// carriers. It is zero until Process succeeds and after a precalc failure.
func (c *Calculator) LowerBound() decimal.Decimal {
	return c.lowerBound
}

// ValidatingCarriers returns the processed validating carriers, own carrier first.
func (c *Calculator) ValidatingCarriers() []string {
	out := make([]string, 0, len(c.valCxrs))
	for _, vc := range c.valCxrs {
		out = append(out, vc.carrier)
	}
	return out
}

// ConcurringCarriers returns the concurring carriers found for valCxr.
func (c *Calculator) ConcurringCarriers(valCxr string) ([]string, error) {
	vc, err := c.valCxr(valCxr)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), vc.concurring...), nil
}

// ValidatingCarrierLowerBound returns the lower bound for one validating carrier.
func (c *Calculator) ValidatingCarrierLowerBound(valCxr string) (decimal.Decimal, error) {
	vc, err := c.valCxr(valCxr)
	if err != nil {
		return decimal.Zero, err
	}
	return vc.lowerBound, nil
}

func (c *Calculator) valCxr(valCxr string) (*valCxrContext, error) {
	if !c.processed.Load() {
		return nil, domain.ErrNotProcessed
	}
	if valCxr == "" {
		if len(c.valCxrs) == 0 {
			return &valCxrContext{}, nil
		}
		return c.valCxrs[0], nil
	}
	vc, ok := c.byCarrier[valCxr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownValidatingCarrier, valCxr)
	}
	return vc, nil
}
