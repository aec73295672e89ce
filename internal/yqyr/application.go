package yqyr

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// convertChain converts amount from one currency to another, passing through via
// when it differs from both ends.
func convertChain(conv domain.CurrencyConverter, amount decimal.Decimal, from, via, to string) (decimal.Decimal, error) {
	var err error
	if via != "" && via != from {
		amount, err = conv.Convert(amount, from, via)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s to %s: %v", domain.ErrCurrencyConversion, from, via, err)
		}
		from = via
	}
	if to != "" && to != from {
		amount, err = conv.Convert(amount, from, to)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s to %s: %v", domain.ErrCurrencyConversion, from, to, err)
		}
	}
	return amount, nil
}

// fixedAmount computes the charge of a fixed-amount record over [first, last].
// Zero and percentage records are not converted; percentages are resolved later.
func fixedAmount(conv domain.CurrencyConverter, fee *domain.FeeRecord, first, last int, baseCurrency, chargeCurrency string) (decimal.Decimal, error) {
	if fee.Amount.IsZero() || fee.IsPercentage() {
		return decimal.Zero, nil
	}

	amount := fee.Amount
	count := last - first + 1
	if count > 1 && fee.ConnectExemptInd.Normalize() != domain.IndicatorX && fee.FeeApplInd.IsBlank() {
		amount = amount.Mul(decimal.NewFromInt(int64(count)))
	}
	return convertChain(conv, amount, fee.Currency, baseCurrency, chargeCurrency)
}

// fareAmounts supplies the fare a percentage record is computed from.
type fareAmounts interface {
	totalNUCAmount() decimal.Decimal
	calculationCurrency() string
	baseFareCurrency() string
}

type farePathAmounts struct {
	fp *domain.FarePath
}

func (a farePathAmounts) totalNUCAmount() decimal.Decimal { return a.fp.TotalNUCAmount }
func (a farePathAmounts) calculationCurrency() string     { return a.fp.CalculationCurrency }
func (a farePathAmounts) baseFareCurrency() string        { return a.fp.BaseFareCurrency }

type paxTypeFareAmounts struct {
	ptf *domain.PaxTypeFare
}

func (a paxTypeFareAmounts) totalNUCAmount() decimal.Decimal { return a.ptf.NUCAmount }
func (a paxTypeFareAmounts) calculationCurrency() string     { return a.ptf.CalculationCurrency }
func (a paxTypeFareAmounts) baseFareCurrency() string        { return a.ptf.BaseFareCurrency }

// percentageAmount resolves a percentage record against a fare: calculation currency
// first, then base fare currency, then the charge currency.
func percentageAmount(conv domain.CurrencyConverter, fee *domain.FeeRecord, fare fareAmounts, chargeCurrency string) (decimal.Decimal, error) {
	amount := fare.totalNUCAmount().Mul(fee.Percent).Div(hundred)
	return convertChain(conv, amount, fare.calculationCurrency(), fare.baseFareCurrency(), chargeCurrency)
}
