package yqyr

import (
	"github.com/shopspring/decimal"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// Application is one fee record applied to the segments [First, Last].
type Application struct {
	Fee   *domain.FeeRecord `json:"-"`
	First int               `json:"first"`
	Last  int               `json:"last"`

	// Amount is in the charge currency; percentage records carry zero until resolved
	// against a fare
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`

	Direction Direction `json:"direction"`

	// Conditional is set when the match depended on fare bases or booking codes not
	// yet fixed
	Conditional bool `json:"conditional"`
}

// FeeApplInd returns the fee application indicator of the underlying record.
func (a *Application) FeeApplInd() domain.Indicator {
	return a.Fee.FeeApplInd.Normalize()
}

// bucketKey identifies the (carrier, fee code) bucket the application was found in.
// Fee lists are fetched per carrier, so the record's carrier is the bucket's.
func (a *Application) bucketKey() bucketKey {
	return bucketKey{a.Fee.Carrier, a.Fee.FeeCode()}
}

// withAmount returns a copy of the application carrying a different amount.
func (a *Application) withAmount(amount decimal.Decimal) *Application {
	cp := *a
	cp.Amount = amount
	return &cp
}

// Path is an ordered, non-overlapping sequence of applications. Paths are immutable;
// Extend and Concat return new paths so that prefixes can be shared.
type Path struct {
	apps   []*Application
	amount decimal.Decimal
}

var emptyPath = &Path{}

// Applications returns a copy of the path's applications in encounter order.
func (p *Path) Applications() []*Application {
	out := make([]*Application, len(p.apps))
	copy(out, p.apps)
	return out
}

// Len returns the number of applications.
func (p *Path) Len() int {
	return len(p.apps)
}

// Amount returns the running sum of per-occurrence applications.
func (p *Path) Amount() decimal.Decimal {
	return p.amount
}

// Extend returns a new path with app appended.
func (p *Path) Extend(app *Application) *Path {
	apps := make([]*Application, len(p.apps), len(p.apps)+1)
	copy(apps, p.apps)
	return &Path{
		apps:   append(apps, app),
		amount: p.amount.Add(occurrenceAmount(app)),
	}
}

// Concat returns a new path with every application of suffix appended.
func (p *Path) Concat(suffix *Path) *Path {
	if len(suffix.apps) == 0 {
		return p
	}
	apps := make([]*Application, 0, len(p.apps)+len(suffix.apps))
	apps = append(apps, p.apps...)
	apps = append(apps, suffix.apps...)
	return &Path{
		apps:   apps,
		amount: p.amount.Add(suffix.amount),
	}
}

func occurrenceAmount(app *Application) decimal.Decimal {
	if app.FeeApplInd() != domain.FeeApplPerOccurrence || !app.Amount.IsPositive() {
		return decimal.Zero
	}
	return app.Amount
}
