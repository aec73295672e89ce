// Package http provides swagger type definitions for API documentation.
// Amounts are decimals serialized as JSON strings.
package http

// SwaggerQuoteResponse represents the quote API response for swagger documentation.
// @Description YQ/YR quote of one itinerary, per passenger type
type SwaggerQuoteResponse struct {
	// TransactionID identifies the pricing transaction in logs
	TransactionID string `json:"transactionId" example:"3f2b6c1e-8a0d-4b7e-9c55-0f1e2d3c4b5a"`

	// Currency is the charge currency of every amount
	Currency string `json:"currency" example:"EUR"`

	// PaxTypes holds one entry per quoted passenger type
	PaxTypes []SwaggerPaxTypeQuote `json:"paxTypes"`

	Metadata SwaggerQuoteMetadata `json:"metadata"`
}

// SwaggerQuoteMetadata describes how the quote was produced.
// @Description Quote execution metadata
type SwaggerQuoteMetadata struct {
	// Calculators is the number of surcharge calculators built
	Calculators int `json:"calculators" example:"2"`

	// DurationMs is the quote duration in milliseconds
	DurationMs int64 `json:"durationMs" example:"12"`
}

// SwaggerPaxTypeQuote holds the results of one passenger type.
// @Description Surcharges of one passenger type
type SwaggerPaxTypeQuote struct {
	PaxType string `json:"paxType" example:"ADT"`

	// LowerBound is the lowest YQ/YR any fare path can carry
	LowerBound string `json:"lowerBound" example:"10"`

	// PrecalcFailed reports that the combinatorial budget ran out; fare paths are
	// then charged one at a time
	PrecalcFailed bool `json:"precalcFailed" example:"false"`

	ValidatingCarriers []SwaggerValidatingCarrierQuote `json:"validatingCarriers"`
	FareMarketPaths    []SwaggerFareMarketPathQuote    `json:"fareMarketPaths,omitempty"`
	FarePaths          []SwaggerFarePathQuote          `json:"farePaths"`
	Shopping           []SwaggerShoppingQuote          `json:"shopping,omitempty"`
}

// SwaggerValidatingCarrierQuote is the lower bound of one validating carrier.
// @Description Lower bound of one validating carrier
type SwaggerValidatingCarrierQuote struct {
	Carrier    string   `json:"carrier" example:"LH"`
	LowerBound string   `json:"lowerBound" example:"10"`
	Concurring []string `json:"concurring" example:"LH"`
}

// SwaggerFareMarketPathQuote is the lower bound of one fare market path.
// @Description Lower bound of one fare market path
type SwaggerFareMarketPathQuote struct {
	ID            string `json:"id" example:"fmp-1"`
	LowerBound    string `json:"lowerBound" example:"10"`
	PrecalcFailed bool   `json:"precalcFailed" example:"false"`
}

// SwaggerFarePathQuote is the charge of one fare path.
// @Description YQ/YR charge of one fare path
type SwaggerFarePathQuote struct {
	ID     string              `json:"id" example:"fp-1"`
	Charge string              `json:"charge" example:"30"`
	Fees   []SwaggerAppliedFee `json:"fees"`
}

// SwaggerShoppingQuote lists the fees falling on one fare's market.
// @Description Shopping match of one passenger type fare
type SwaggerShoppingQuote struct {
	FareBasis string              `json:"fareBasis" example:"YOW"`
	FirstSeg  int                 `json:"firstSeg" example:"0"`
	LastSeg   int                 `json:"lastSeg" example:"1"`
	Total     string              `json:"total" example:"15"`
	Fees      []SwaggerAppliedFee `json:"fees"`
}

// SwaggerAppliedFee is one fee record charged over a segment range.
// @Description Applied YQ/YR fee
type SwaggerAppliedFee struct {
	Carrier     string `json:"carrier" example:"LH"`
	TaxCode     string `json:"taxCode" example:"YQ"`
	SubCode     string `json:"subCode" example:"F"`
	SeqNo       int64  `json:"seqNo" example:"20"`
	FirstSeg    int    `json:"firstSeg" example:"0"`
	LastSeg     int    `json:"lastSeg" example:"1"`
	Direction   string `json:"direction" example:"OUTBOUND"`
	FeeApplInd  string `json:"feeApplInd" example:"1"`
	Amount      string `json:"amount" example:"10"`
	Currency    string `json:"currency" example:"EUR"`
	Conditional bool   `json:"conditional" example:"true"`
}
