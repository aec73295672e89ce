// Package currency converts amounts through a static NUC rate table.
package currency

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// NUC is the neutral unit of construction every rate is quoted against.
const NUC = "NUC"

// Table converts between currencies by way of NUC. It is safe for concurrent use.
type Table struct {
	mu    sync.RWMutex
	rates map[string]domain.CurrencyRate
}

var _ domain.CurrencyConverter = (*Table)(nil)

// NewTable creates a table from rates. NUC is always present at par.
func NewTable(rates []domain.CurrencyRate) (*Table, error) {
	t := &Table{rates: map[string]domain.CurrencyRate{
		NUC: {Currency: NUC, PerNUC: decimal.NewFromInt(1), Decimals: 2},
	}}
	for _, r := range rates {
		if err := t.Set(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// DefaultRates is a small built-in table for local runs.
func DefaultRates() []domain.CurrencyRate {
	return []domain.CurrencyRate{
		{Currency: "USD", PerNUC: decimal.NewFromInt(1), Decimals: 2},
		{Currency: "EUR", PerNUC: decimal.RequireFromString("0.92"), Decimals: 2},
		{Currency: "GBP", PerNUC: decimal.RequireFromString("0.79"), Decimals: 2},
		{Currency: "CHF", PerNUC: decimal.RequireFromString("0.88"), Decimals: 2},
		{Currency: "JPY", PerNUC: decimal.RequireFromString("151.2"), Decimals: 0},
		{Currency: "IDR", PerNUC: decimal.RequireFromString("15650"), Decimals: 0},
		{Currency: "KWD", PerNUC: decimal.RequireFromString("0.307"), Decimals: 3},
	}
}

// Set adds or replaces one rate.
func (t *Table) Set(r domain.CurrencyRate) error {
	code := strings.ToUpper(strings.TrimSpace(r.Currency))
	if len(code) != 3 {
		return fmt.Errorf("currency %q: code must have three letters", r.Currency)
	}
	if !r.PerNUC.IsPositive() {
		return fmt.Errorf("currency %s: rate must be positive", code)
	}
	if r.Decimals < 0 {
		return fmt.Errorf("currency %s: negative precision", code)
	}
	r.Currency = code

	t.mu.Lock()
	t.rates[code] = r
	t.mu.Unlock()
	return nil
}

// Convert converts amount from one currency to another and rounds to the target
// currency's precision.
func (t *Table) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	t.mu.RLock()
	src, okFrom := t.rates[strings.ToUpper(from)]
	dst, okTo := t.rates[strings.ToUpper(to)]
	t.mu.RUnlock()

	if !okFrom {
		return decimal.Zero, fmt.Errorf("%w: unknown currency %q", domain.ErrCurrencyConversion, from)
	}
	if !okTo {
		return decimal.Zero, fmt.Errorf("%w: unknown currency %q", domain.ErrCurrencyConversion, to)
	}

	if src.Currency == dst.Currency {
		return amount.Round(dst.Decimals), nil
	}
	nuc := amount.DivRound(src.PerNUC, 8)
	return nuc.Mul(dst.PerNUC).Round(dst.Decimals), nil
}

// Precision returns the number of decimals of code.
func (t *Table) Precision(code string) (int32, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rates[strings.ToUpper(code)]
	return r.Decimals, ok
}
