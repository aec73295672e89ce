// Package usecase contains the quote workflow: it builds the surcharge calculators
// of one pricing transaction and answers charge, lower-bound and shopping queries.
package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// DefaultQuoteTimeout bounds one quote when no timeout is configured.
const DefaultQuoteTimeout = 5 * time.Second

// DefaultPaxType is used when a request names no passenger type.
const DefaultPaxType = "ADT"

// Config contains configuration options for the use case.
type Config struct {
	// Timeout is the deadline of one quote
	Timeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Timeout: DefaultQuoteTimeout}
}

// QuoteRequest is one pricing transaction.
type QuoteRequest struct {
	Itinerary *domain.Itinerary

	// PaxTypes lists the passenger types to price; empty means ADT
	PaxTypes []string

	// FareMarketPaths, when given, get one calculator each per passenger type
	FareMarketPaths []*domain.FareMarketPath

	// FarePaths are charged with ChargeFarePath
	FarePaths []*domain.FarePath

	// PaxTypeFares are answered with shopping queries
	PaxTypeFares []*domain.PaxTypeFare

	// ValidatingCarrier selects the carrier queries run for; empty means the
	// itinerary's own validating carrier
	ValidatingCarrier string
}

// QuoteResponse carries the results of every passenger type.
type QuoteResponse struct {
	TransactionID string         `json:"transactionId"`
	Currency      string         `json:"currency"`
	PaxTypes      []PaxTypeQuote `json:"paxTypes"`
	Metadata      QuoteMetadata  `json:"metadata"`
}

// QuoteMetadata describes how the quote was produced.
type QuoteMetadata struct {
	Calculators int   `json:"calculators"`
	DurationMs  int64 `json:"durationMs"`
}

// PaxTypeQuote holds the results of one passenger type.
type PaxTypeQuote struct {
	PaxType string `json:"paxType"`

	// LowerBound is the lowest YQ/YR any fare path of the passenger type can carry
	LowerBound    decimal.Decimal `json:"lowerBound"`
	PrecalcFailed bool            `json:"precalcFailed"`

	ValidatingCarriers []ValidatingCarrierQuote `json:"validatingCarriers"`
	FareMarketPaths    []FareMarketPathQuote    `json:"fareMarketPaths,omitempty"`
	FarePaths          []FarePathQuote          `json:"farePaths"`
	Shopping           []ShoppingQuote          `json:"shopping,omitempty"`
}

// ValidatingCarrierQuote is the lower bound of one validating carrier.
type ValidatingCarrierQuote struct {
	Carrier    string          `json:"carrier"`
	LowerBound decimal.Decimal `json:"lowerBound"`
	Concurring []string        `json:"concurring"`
}

// FareMarketPathQuote is the lower bound of one fare market path's calculator.
type FareMarketPathQuote struct {
	ID            string          `json:"id"`
	LowerBound    decimal.Decimal `json:"lowerBound"`
	PrecalcFailed bool            `json:"precalcFailed"`
}

// FarePathQuote is the charge of one fare path.
type FarePathQuote struct {
	ID     string          `json:"id"`
	Charge decimal.Decimal `json:"charge"`
	Fees   []AppliedFee    `json:"fees"`
}

// ShoppingQuote lists the fees falling on one fare's market.
type ShoppingQuote struct {
	FareBasis string          `json:"fareBasis"`
	FirstSeg  int             `json:"firstSeg"`
	LastSeg   int             `json:"lastSeg"`
	Total     decimal.Decimal `json:"total"`
	Fees      []AppliedFee    `json:"fees"`
}

// AppliedFee is one fee record charged over a segment range.
type AppliedFee struct {
	Carrier     string          `json:"carrier"`
	TaxCode     string          `json:"taxCode"`
	SubCode     string          `json:"subCode"`
	SeqNo       int64           `json:"seqNo"`
	FirstSeg    int             `json:"firstSeg"`
	LastSeg     int             `json:"lastSeg"`
	Direction   string          `json:"direction"`
	FeeApplInd  string          `json:"feeApplInd"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Conditional bool            `json:"conditional"`
}
