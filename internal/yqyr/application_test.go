package yqyr

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

func TestFixedAmount(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(fee *domain.FeeRecord)
		first, last int
		want        string
	}{
		{"single sector", func(*domain.FeeRecord) {}, 0, 0, "10"},
		{"per occurrence portion counts its sectors", func(*domain.FeeRecord) {}, 0, 2, "30"},
		{"connect exempt portion", func(fee *domain.FeeRecord) { fee.ConnectExemptInd = domain.IndicatorX }, 0, 2, "10"},
		{"per journey portion", func(fee *domain.FeeRecord) { fee.FeeApplInd = domain.FeeApplPerJourneyMax }, 0, 2, "10"},
		{"zero amount", func(fee *domain.FeeRecord) { fee.Amount = decimal.Zero }, 0, 2, "0"},
		{"percentage is resolved later", func(fee *domain.FeeRecord) {
			fee.Amount = decimal.Zero
			fee.Percent = decimal.NewFromInt(3)
		}, 0, 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := portionFee("LH", 1, 10)
			tt.setup(fee)

			got, err := fixedAmount(nil, fee, tt.first, tt.last, "EUR", "EUR")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestConvertChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conv := domain.NewMockCurrencyConverter(ctrl)
	gomock.InOrder(
		conv.EXPECT().Convert(decimal.NewFromInt(100), "NUC", "EUR").Return(decimal.NewFromInt(90), nil),
		conv.EXPECT().Convert(decimal.NewFromInt(90), "EUR", "USD").Return(decimal.NewFromInt(99), nil),
	)

	got, err := convertChain(conv, decimal.NewFromInt(100), "NUC", "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "99", got.String())
}

func TestConvertChain_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conv := setupConverter(ctrl, nil)
	_, err := convertChain(conv, decimal.NewFromInt(100), "EUR", "EUR", "JPY")
	assert.ErrorIs(t, err, domain.ErrCurrencyConversion)
}

func TestPercentageAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fee := sectorFee("LH", 1, 0)
	fee.Percent = decimal.RequireFromString("12.5")

	fp := farePath("ADT")
	fp.TotalNUCAmount = decimal.NewFromInt(800)

	conv := setupConverter(ctrl, map[string]decimal.Decimal{"USD": decimal.NewFromInt(2)})
	got, err := percentageAmount(conv, fee, farePathAmounts{fp}, "USD")
	require.NoError(t, err)
	assert.Equal(t, "200", got.String())
}
