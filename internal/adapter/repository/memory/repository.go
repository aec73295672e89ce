// Package memory serves filing data from a JSON bundle held in memory.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// Bundle is the on-disk layout of a filing snapshot.
type Bundle struct {
	Fees               []*domain.FeeRecord                    `json:"fees"`
	NonConcurrence     []*domain.NonConcurRecord              `json:"nonConcurrence"`
	CarrierApplication map[string][]domain.CarrierApplEntry   `json:"carrierApplication"`
	CarrierFlights     map[string][]domain.CarrierFlightEntry `json:"carrierFlights"`
	Zones              []domain.Zone                          `json:"zones"`
	Rates              []domain.CurrencyRate                  `json:"rates"`
}

// Repository is a read-only SurchargeDataSource over a Bundle.
type Repository struct {
	fees      map[string][]*domain.FeeRecord
	nonConcur map[string]*domain.NonConcurRecord
	t190      map[int][]domain.CarrierApplEntry
	t186      map[int][]domain.CarrierFlightEntry
	zones     map[string][]domain.LocKey
	rates     []domain.CurrencyRate
}

var _ domain.SurchargeDataSource = (*Repository)(nil)

// Load reads a bundle from path.
func Load(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filing bundle: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON bundle.
func Parse(data []byte) (*Repository, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse filing bundle: %w", err)
	}
	return New(b)
}

// New indexes b. Fee lists are sorted by tax code, sub code and sequence number.
func New(b Bundle) (*Repository, error) {
	r := &Repository{
		fees:      make(map[string][]*domain.FeeRecord),
		nonConcur: make(map[string]*domain.NonConcurRecord),
		t190:      make(map[int][]domain.CarrierApplEntry),
		t186:      make(map[int][]domain.CarrierFlightEntry),
		zones:     make(map[string][]domain.LocKey),
		rates:     b.Rates,
	}

	for i, fee := range b.Fees {
		if fee == nil {
			continue
		}
		if fee.Carrier == "" || fee.TaxCode == "" {
			return nil, fmt.Errorf("fee %d: carrier and tax code are required", i)
		}
		fee.Normalize()
		r.fees[fee.Carrier] = append(r.fees[fee.Carrier], fee)
	}
	for _, list := range r.fees {
		SortFees(list)
	}

	for _, rec := range b.NonConcurrence {
		if rec == nil {
			continue
		}
		rec.SelfAppl = rec.SelfAppl.Normalize()
		r.nonConcur[rec.Carrier] = rec
	}

	for key, rows := range b.CarrierApplication {
		item, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("carrier application item %q: %w", key, err)
		}
		for i := range rows {
			rows[i].ApplInd = rows[i].ApplInd.Normalize()
		}
		r.t190[item] = rows
	}

	for key, rows := range b.CarrierFlights {
		item, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("carrier flight item %q: %w", key, err)
		}
		r.t186[item] = rows
	}

	for _, z := range b.Zones {
		r.zones[zoneKey(z.Vendor, z.Zone)] = z.Members
	}

	return r, nil
}

// SortFees orders records by tax code, sub code, then sequence number.
func SortFees(fees []*domain.FeeRecord) {
	sort.SliceStable(fees, func(i, j int) bool {
		a, b := fees[i], fees[j]
		if a.TaxCode != b.TaxCode {
			return a.TaxCode < b.TaxCode
		}
		if a.SubCode != b.SubCode {
			return a.SubCode < b.SubCode
		}
		return a.SeqNo < b.SeqNo
	})
}

// FeesByCarrier returns the carrier's records.
func (r *Repository) FeesByCarrier(ctx context.Context, carrier string) ([]*domain.FeeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.fees[carrier], nil
}

// NonConcurrence returns the carrier's non-concurrence record, or nil.
func (r *Repository) NonConcurrence(ctx context.Context, carrier string) (*domain.NonConcurRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.nonConcur[carrier], nil
}

// CarrierApplication returns the rows of a table 190 item.
func (r *Repository) CarrierApplication(ctx context.Context, itemNo int) ([]domain.CarrierApplEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t190[itemNo], nil
}

// CarrierFlights returns the rows of a table 186 item.
func (r *Repository) CarrierFlights(ctx context.Context, itemNo int) ([]domain.CarrierFlightEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t186[itemNo], nil
}

// Zone returns the members of a vendor zone.
func (r *Repository) Zone(ctx context.Context, vendor, zone string) ([]domain.LocKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.zones[zoneKey(vendor, zone)], nil
}

// Rates returns the bundle's currency rates.
func (r *Repository) Rates() []domain.CurrencyRate {
	return r.rates
}

// Carriers returns the carriers with at least one fee record, sorted.
func (r *Repository) Carriers() []string {
	out := make([]string, 0, len(r.fees))
	for cxr := range r.fees {
		out = append(out, cxr)
	}
	sort.Strings(out)
	return out
}

func zoneKey(vendor, zone string) string {
	return strings.ToUpper(vendor) + "/" + zone
}
