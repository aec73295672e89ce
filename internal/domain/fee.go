package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Indicator is a single-character filing flag. A zero value reads as blank.
// It marshals to a one-character JSON string.
type Indicator byte

// MarshalJSON renders the indicator as a one-character string.
func (i Indicator) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(rune(i.Normalize())))
}

// UnmarshalJSON accepts "" (blank) or a one-character string.
func (i *Indicator) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("indicator: %w", err)
	}
	switch len(s) {
	case 0:
		*i = Blank
	case 1:
		*i = Indicator(s[0])
	default:
		return fmt.Errorf("indicator %q: must be one character", s)
	}
	return nil
}

// Normalize maps a zero byte to blank so decoded and filed records compare the same way.
func (i Indicator) Normalize() Indicator {
	if i == 0 {
		return Blank
	}
	return i
}

// IsBlank reports whether the indicator is unset.
func (i Indicator) IsBlank() bool {
	return i.Normalize() == Blank
}

// Fee application indicators.
const (
	// FeeApplPerOccurrence charges every qualifying sector or portion
	FeeApplPerOccurrence Indicator = ' '

	// FeeApplPerDirectionMax charges at most the highest amount per direction
	FeeApplPerDirectionMax Indicator = '1'

	// FeeApplPerJourneyMax charges at most the highest amount per journey
	FeeApplPerJourneyMax Indicator = '2'
)

// Sector/portion indicators.
const (
	SectorInd  Indicator = 'S'
	PortionInd Indicator = 'P'
)

// Stopover/connection indicators.
const (
	StopConnectNone       Indicator = ' '
	StopConnectStopover   Indicator = 'S'
	StopConnectConnection Indicator = 'C'
)

// Stopover/connection time units.
const (
	UnitMinutes Indicator = 'N'
	UnitHours   Indicator = 'H'
	UnitDays    Indicator = 'D'
	UnitMonths  Indicator = 'M'
)

// Journey and sector direction indicators.
const (
	DirBetween Indicator = ' '
	DirFromTo  Indicator = '1'
	DirToFrom  Indicator = '2'
)

// International/domestic indicators.
const (
	IntlDomAny           Indicator = ' '
	IntlDomInternational Indicator = 'I'
	IntlDomDomestic      Indicator = 'D'
)

// Misc single-character flags.
const (
	IndicatorYes Indicator = 'Y'
	IndicatorNo  Indicator = 'N'
	IndicatorX   Indicator = 'X'
	Blank        Indicator = ' '
)

// FeeRecord is one carrier-filed YQ/YR surcharge record. Records are immutable
// once loaded.
type FeeRecord struct {
	Carrier string `json:"carrier"`

	// TaxCode is "YQ" or "YR"; SubCode distinguishes filings (e.g., "F", "I")
	TaxCode string `json:"taxCode"`
	SubCode string `json:"subCode,omitempty"`

	Vendor string `json:"vendor,omitempty"`
	SeqNo  int64  `json:"seqNo"`

	// Interval is the travel effectivity window of the record
	Interval DateInterval `json:"interval"`

	// FirstTktDate and LastTktDate restrict the ticketing date when set
	FirstTktDate time.Time `json:"firstTktDate,omitempty"`
	LastTktDate  time.Time `json:"lastTktDate,omitempty"`

	// Amount and Currency describe a fixed fee; Percent a percentage of the fare
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Percent  decimal.Decimal `json:"percent"`

	FeeApplInd       Indicator `json:"feeApplInd"`
	SectorPortionInd Indicator `json:"sectorPortionInd"`
	ConnectExemptInd Indicator `json:"connectExemptInd"`

	StopConnectInd  Indicator `json:"stopConnectInd"`
	StopConnectUnit Indicator `json:"stopConnectUnit"`

	// StopConnectTime is ignored when StopConnectUnit is blank or the time is negative
	StopConnectTime int `json:"stopConnectTime"`

	// JourneyLoc1/2 are compared with the journey origin and furthest point
	JourneyInd  Indicator `json:"journeyInd"`
	JourneyLoc1 LocKey    `json:"journeyLoc1"`
	JourneyLoc2 LocKey    `json:"journeyLoc2"`

	// SectorPortionLoc1/2 are compared with the sector or portion endpoints
	DirectionalityInd Indicator `json:"directionalityInd"`
	SectorPortionLoc1 LocKey    `json:"sectorPortionLoc1"`
	SectorPortionLoc2 LocKey    `json:"sectorPortionLoc2"`

	ViaLoc          LocKey `json:"viaLoc"`
	WhollyWithinLoc LocKey `json:"whollyWithinLoc"`

	// FareBasis may contain "/"-separated ticket designators and wildcards
	FareBasis string `json:"fareBasis,omitempty"`

	BookingCode1 string `json:"bookingCode1,omitempty"`
	BookingCode2 string `json:"bookingCode2,omitempty"`
	BookingCode3 string `json:"bookingCode3,omitempty"`

	Equipment string `json:"equipment,omitempty"`

	// CarrierFltTblItemNo references table 186; ValCxrTblItemNo table 190
	CarrierFltTblItemNo int `json:"carrierFltTblItemNo,omitempty"`
	ValCxrTblItemNo     int `json:"valCxrTblItemNo,omitempty"`

	IntlDomInd Indicator `json:"intlDomInd"`

	PsgType string `json:"psgType,omitempty"`

	PosLoc     LocKey `json:"posLoc"`
	PotLoc     LocKey `json:"potLoc"`
	AgencyPCC  string `json:"agencyPcc,omitempty"`
	AgencyIATA string `json:"agencyIata,omitempty"`

	ReturnToOrigin Indicator `json:"returnToOrigin"`
}

// FeeCode returns the tax code plus sub code, e.g. "YQF".
func (f *FeeRecord) FeeCode() string {
	return f.TaxCode + f.SubCode
}

// IsPortion reports whether the record applies to a portion of travel.
func (f *FeeRecord) IsPortion() bool {
	return f.SectorPortionInd == PortionInd
}

// IsPercentage reports whether the record is filed as a percentage of the fare.
func (f *FeeRecord) IsPercentage() bool {
	return f.Percent.IsPositive()
}

// BookingCodes returns the non-blank filed booking codes.
func (f *FeeRecord) BookingCodes() []string {
	var codes []string
	for _, bc := range []string{f.BookingCode1, f.BookingCode2, f.BookingCode3} {
		if bc != "" {
			codes = append(codes, bc)
		}
	}
	return codes
}

// HasStopConnectTime reports whether a stopover/connection threshold is filed.
func (f *FeeRecord) HasStopConnectTime() bool {
	return !f.StopConnectUnit.IsBlank() && f.StopConnectTime >= 0
}

// Normalize replaces zero indicator bytes with blanks.
func (f *FeeRecord) Normalize() {
	f.FeeApplInd = f.FeeApplInd.Normalize()
	f.SectorPortionInd = f.SectorPortionInd.Normalize()
	if f.SectorPortionInd == Blank {
		f.SectorPortionInd = SectorInd
	}
	f.ConnectExemptInd = f.ConnectExemptInd.Normalize()
	f.StopConnectInd = f.StopConnectInd.Normalize()
	f.StopConnectUnit = f.StopConnectUnit.Normalize()
	f.JourneyInd = f.JourneyInd.Normalize()
	f.DirectionalityInd = f.DirectionalityInd.Normalize()
	f.IntlDomInd = f.IntlDomInd.Normalize()
	f.ReturnToOrigin = f.ReturnToOrigin.Normalize()
}

// NonConcurRecord lists which marketing carriers a validating carrier concurs with.
type NonConcurRecord struct {
	Carrier string `json:"carrier"`

	// SelfAppl 'X' means the validating carrier does not concur with itself
	SelfAppl Indicator `json:"selfAppl"`

	// CarrierApplTblItemNo references table 190
	CarrierApplTblItemNo int `json:"carrierApplTblItemNo"`
}

// DollarCarrier is the table 190 wildcard carrier.
const DollarCarrier = "$$"

// CarrierApplEntry is one row of a table 190 item.
type CarrierApplEntry struct {
	Carrier string `json:"carrier"`

	// ApplInd 'X' excludes the carrier
	ApplInd Indicator `json:"applInd"`
}

// AnyFlight is the table 186 wildcard flight number.
const AnyFlight = -1

// CarrierFlightEntry is one row of a table 186 item.
type CarrierFlightEntry struct {
	MarketingCarrier string `json:"marketingCarrier,omitempty"`
	OperatingCarrier string `json:"operatingCarrier,omitempty"`
	Flt1             int    `json:"flt1"`
	Flt2             int    `json:"flt2"`
}

// MatchesFlight reports whether the row admits the given segment.
func (e CarrierFlightEntry) MatchesFlight(seg *TravelSegment) bool {
	if e.MarketingCarrier != "" && e.MarketingCarrier != seg.MarketingCarrier {
		return false
	}
	if e.OperatingCarrier != "" && e.OperatingCarrier != seg.Operating() {
		return false
	}
	if e.Flt1 == AnyFlight {
		return true
	}
	if e.Flt1 > seg.FlightNumber {
		return false
	}
	if e.Flt2 == 0 || e.Flt1 == e.Flt2 {
		return e.Flt1 == seg.FlightNumber
	}
	return seg.FlightNumber <= e.Flt2
}
