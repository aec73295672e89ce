package yqyr

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/timeutil"
)

var (
	locFRA = &domain.Location{Code: "FRA", City: "FRA", Nation: "DE", SubArea: "21", Area: "2"}
	locMUC = &domain.Location{Code: "MUC", City: "MUC", Nation: "DE", SubArea: "21", Area: "2"}
	locLHR = &domain.Location{Code: "LHR", City: "LON", Nation: "GB", SubArea: "21", Area: "2"}
	locJFK = &domain.Location{Code: "JFK", City: "NYC", Nation: "US", Area: "1"}
	locBOS = &domain.Location{Code: "BOS", City: "BOS", Nation: "US", Area: "1"}
)

// testMiles is a mileage table measured from FRA, good enough to place turnarounds.
var testMiles = map[string]int{
	"FRA": 0,
	"MUC": 190,
	"LHR": 400,
	"BOS": 3650,
	"JFK": 3850,
}

type mileageFunc func(from, to *domain.Location) int

func (f mileageFunc) Mileage(from, to *domain.Location) int { return f(from, to) }

func fromFRA() domain.MileageProvider {
	return mileageFunc(func(_, to *domain.Location) int { return testMiles[to.Code] })
}

var testDay = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

// seg creates a segment departing dayOffset days and hour hours after testDay,
// flying two hours.
func seg(cxr string, from, to *domain.Location, dayOffset, hour int) *domain.TravelSegment {
	dep := testDay.AddDate(0, 0, dayOffset).Add(time.Duration(hour) * time.Hour)
	return &domain.TravelSegment{
		Origin:           from,
		Destination:      to,
		MarketingCarrier: cxr,
		FlightNumber:     100,
		BookingCode:      "Y",
		Departure:        dep,
		Arrival:          dep.Add(2 * time.Hour),
	}
}

func itinerary(segs ...*domain.TravelSegment) *domain.Itinerary {
	return &domain.Itinerary{
		Segments:           segs,
		ValidatingCarriers: []string{segs[0].MarketingCarrier},
		PointOfSale:        locFRA,
		TicketingDate:      testDay.AddDate(0, 0, -10),
		PaymentCurrency:    "EUR",
	}
}

// connectingLH is FRA-MUC-JFK on LH with a one-hour connection in MUC.
func connectingLH() *domain.Itinerary {
	return itinerary(
		seg("LH", locFRA, locMUC, 0, 8),
		seg("LH", locMUC, locJFK, 0, 11),
	)
}

// roundTripLH is FRA-JFK-FRA on LH with a week in NYC.
func roundTripLH() *domain.Itinerary {
	return itinerary(
		seg("LH", locFRA, locJFK, 0, 10),
		seg("LH", locJFK, locFRA, 7, 18),
	)
}

func sectorFee(cxr string, seq int64, amount int64) *domain.FeeRecord {
	return &domain.FeeRecord{
		Carrier:          cxr,
		TaxCode:          "YQ",
		SubCode:          "F",
		SeqNo:            seq,
		Amount:           decimal.NewFromInt(amount),
		Currency:         "EUR",
		FeeApplInd:       domain.FeeApplPerOccurrence,
		SectorPortionInd: domain.SectorInd,
	}
}

func portionFee(cxr string, seq int64, amount int64) *domain.FeeRecord {
	fee := sectorFee(cxr, seq, amount)
	fee.SectorPortionInd = domain.PortionInd
	return fee
}

func farePath(paxType string, usages ...*domain.FareUsage) *domain.FarePath {
	return &domain.FarePath{
		ID:                  "fp-1",
		PaxType:             paxType,
		Usages:              usages,
		TotalNUCAmount:      decimal.NewFromInt(1000),
		CalculationCurrency: "EUR",
		BaseFareCurrency:    "EUR",
	}
}

func usage(fareBasis string, segs ...int) *domain.FareUsage {
	return &domain.FareUsage{FareBasis: fareBasis, SegmentIndices: segs}
}

// setupDataSource creates a data source mock serving fees per carrier with no
// non-concurrence records and no reference tables.
func setupDataSource(ctrl *gomock.Controller, fees map[string][]*domain.FeeRecord) *domain.MockSurchargeDataSource {
	ds := domain.NewMockSurchargeDataSource(ctrl)
	ds.EXPECT().FeesByCarrier(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, carrier string) ([]*domain.FeeRecord, error) {
			return fees[carrier], nil
		},
	).AnyTimes()
	ds.EXPECT().NonConcurrence(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	return ds
}

// setupConverter creates a converter mock applying fixed rates to EUR amounts.
func setupConverter(ctrl *gomock.Controller, rates map[string]decimal.Decimal) *domain.MockCurrencyConverter {
	conv := domain.NewMockCurrencyConverter(ctrl)
	conv.EXPECT().Convert(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
			if from != "EUR" {
				return decimal.Zero, domain.ErrCurrencyConversion
			}
			rate, ok := rates[to]
			if !ok {
				return decimal.Zero, domain.ErrCurrencyConversion
			}
			return amount.Mul(rate).Round(2), nil
		},
	).AnyTimes()
	return conv
}

func testDeps(ctrl *gomock.Controller, ds domain.SurchargeDataSource) Dependencies {
	return Dependencies{
		DataSource: ds,
		Currency:   domain.NewMockCurrencyConverter(ctrl),
		Mileage:    fromFRA(),
		Clock:      timeutil.NewFixedClock(testDay),
		Logger:     zerolog.Nop(),
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.BaseCurrency = "EUR"
	return cfg
}

func amounts(apps []*Application) []string {
	out := make([]string, len(apps))
	for i, app := range apps {
		out[i] = app.Amount.String()
	}
	return out
}
