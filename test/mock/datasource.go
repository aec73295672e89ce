// Package mock provides test doubles for the surcharge engine.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, call counting) around real filings.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// DataSource wraps a domain.SurchargeDataSource with injectable delays and
// errors. Lookups not configured to fail are served by the wrapped source.
type DataSource struct {
	next domain.SurchargeDataSource

	mu          sync.Mutex
	delay       time.Duration
	feeErr      error
	failCarrier map[string]error
	feeCalls    map[string]int
	calls       int
}

// NewDataSource wraps next. A nil next serves no filings at all.
func NewDataSource(next domain.SurchargeDataSource) *DataSource {
	return &DataSource{
		next:        next,
		failCarrier: make(map[string]error),
		feeCalls:    make(map[string]int),
	}
}

// WithDelay makes every lookup wait d before answering.
// This is useful for testing timeout behavior.
func (d *DataSource) WithDelay(delay time.Duration) *DataSource {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
	return d
}

// WithFeeError makes every FeesByCarrier call fail with err.
func (d *DataSource) WithFeeError(err error) *DataSource {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.feeErr = err
	return d
}

// WithCarrierError makes FeesByCarrier fail with err for one carrier only.
func (d *DataSource) WithCarrierError(carrier string, err error) *DataSource {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failCarrier[carrier] = err
	return d
}

// FeesByCarrier implements domain.SurchargeDataSource.
func (d *DataSource) FeesByCarrier(ctx context.Context, carrier string) ([]*domain.FeeRecord, error) {
	d.mu.Lock()
	d.feeCalls[carrier]++
	err := d.feeErr
	if e, ok := d.failCarrier[carrier]; ok {
		err = e
	}
	d.mu.Unlock()

	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if d.next == nil {
		return nil, nil
	}
	return d.next.FeesByCarrier(ctx, carrier)
}

// NonConcurrence implements domain.SurchargeDataSource.
func (d *DataSource) NonConcurrence(ctx context.Context, carrier string) (*domain.NonConcurRecord, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	if d.next == nil {
		return nil, nil
	}
	return d.next.NonConcurrence(ctx, carrier)
}

// CarrierApplication implements domain.SurchargeDataSource.
func (d *DataSource) CarrierApplication(ctx context.Context, itemNo int) ([]domain.CarrierApplEntry, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	if d.next == nil {
		return nil, nil
	}
	return d.next.CarrierApplication(ctx, itemNo)
}

// CarrierFlights implements domain.SurchargeDataSource.
func (d *DataSource) CarrierFlights(ctx context.Context, itemNo int) ([]domain.CarrierFlightEntry, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	if d.next == nil {
		return nil, nil
	}
	return d.next.CarrierFlights(ctx, itemNo)
}

// Zone implements domain.SurchargeDataSource.
func (d *DataSource) Zone(ctx context.Context, vendor, zone string) ([]domain.LocKey, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	if d.next == nil {
		return nil, nil
	}
	return d.next.Zone(ctx, vendor, zone)
}

// wait applies the configured delay, respecting context cancellation.
func (d *DataSource) wait(ctx context.Context) error {
	d.mu.Lock()
	d.calls++
	delay := d.delay
	d.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return ctx.Err()
}

// FeeCalls returns how many times the fees of carrier were requested.
func (d *DataSource) FeeCalls(carrier string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.feeCalls[carrier]
}

// CallCount returns the number of lookups of any kind.
func (d *DataSource) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// Reset clears the call counters.
func (d *DataSource) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = 0
	d.feeCalls = make(map[string]int)
}

// Ensure DataSource implements domain.SurchargeDataSource at compile time.
var _ domain.SurchargeDataSource = (*DataSource)(nil)
