package yqyr

import (
	"context"
	"sync"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

type factoryKey struct {
	paxType string
	fmpID   string
}

// Factory caches the calculators of one pricing transaction by passenger type and
// fare market path. For a simple itinerary the fare market path does not change
// the result, so one calculator serves every fare market path of a passenger type.
type Factory struct {
	mu          sync.Mutex
	cfg         Config
	deps        Dependencies
	it          *domain.Itinerary
	simple      bool
	calculators map[factoryKey]*Calculator
}

// NewFactory creates the calculator cache for it.
func NewFactory(it *domain.Itinerary, cfg Config, deps Dependencies) *Factory {
	deps = deps.withDefaults()
	return &Factory{
		cfg:         cfg,
		deps:        deps,
		it:          it,
		simple:      AnalyzeItinerary(it, deps.Mileage).Simple,
		calculators: make(map[factoryKey]*Calculator),
	}
}

// Get returns the processed calculator for paxType and fmp, creating it on first use.
func (f *Factory) Get(ctx context.Context, paxType string, fmp *domain.FareMarketPath) (*Calculator, error) {
	key := factoryKey{paxType: paxType}
	if fmp != nil && !f.simple {
		key.fmpID = fmp.ID
	}

	f.mu.Lock()
	calc, ok := f.calculators[key]
	if !ok {
		if key.fmpID == "" {
			fmp = nil
		}
		calc = New(f.it, paxType, fmp, f.cfg, f.deps)
		f.calculators[key] = calc
	}

	if f.cfg.LessLocking {
		defer f.mu.Unlock()
		if calc.processed.Load() {
			return calc, nil
		}
		if err := calc.Process(ctx); err != nil {
			delete(f.calculators, key)
			return nil, err
		}
		return calc, nil
	}
	f.mu.Unlock()

	if err := calc.Process(ctx); err != nil {
		// the run-once error is sticky, so the next Get builds a new calculator
		f.mu.Lock()
		if f.calculators[key] == calc {
			delete(f.calculators, key)
		}
		f.mu.Unlock()
		return nil, err
	}
	return calc, nil
}

// Len returns the number of cached calculators.
func (f *Factory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calculators)
}
