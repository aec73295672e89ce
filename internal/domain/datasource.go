package domain

//go:generate mockgen -source=datasource.go -destination=mock_datasource.go -package=domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// SurchargeDataSource provides the carrier filings the calculator matches against.
// Implementations must be safe for concurrent use.
type SurchargeDataSource interface {
	// FeesByCarrier returns the carrier's YQ/YR records sorted by tax code, sub code
	// and sequence number. An unknown carrier yields an empty list.
	FeesByCarrier(ctx context.Context, carrier string) ([]*FeeRecord, error)

	// NonConcurrence returns the carrier's non-concurrence record, or nil if none is filed.
	NonConcurrence(ctx context.Context, carrier string) (*NonConcurRecord, error)

	// CarrierApplication returns the rows of a table 190 item.
	CarrierApplication(ctx context.Context, itemNo int) ([]CarrierApplEntry, error)

	// CarrierFlights returns the rows of a table 186 item.
	CarrierFlights(ctx context.Context, itemNo int) ([]CarrierFlightEntry, error)

	// Zone returns the member locations of a vendor zone.
	Zone(ctx context.Context, vendor, zone string) ([]LocKey, error)
}

// CurrencyConverter converts amounts between currencies.
type CurrencyConverter interface {
	// Convert converts amount from one currency to another, rounding to the target
	// currency's precision.
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// MileageProvider computes the distance used to find an itinerary's furthest point.
type MileageProvider interface {
	Mileage(from, to *Location) int
}

// MemoryGovernor reports transaction-wide memory pressure.
type MemoryGovernor interface {
	Exhausted() bool
}

// CurrencyRate is one row of a NUC rate table.
type CurrencyRate struct {
	Currency string `json:"currency"`

	// PerNUC is the number of currency units one NUC buys
	PerNUC decimal.Decimal `json:"perNuc"`

	// Decimals is the currency's rounding precision
	Decimals int32 `json:"decimals"`
}

// Zone is a vendor zone and its member locations.
type Zone struct {
	Vendor  string   `json:"vendor"`
	Zone    string   `json:"zone"`
	Members []LocKey `json:"members"`
}
