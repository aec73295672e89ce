package yqyr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

// interlineLH is FRA-LHR on LH, LHR-JFK on BA, JFK-BOS on AA.
func interlineLH() *domain.Itinerary {
	return itinerary(
		seg("LH", locFRA, locLHR, 0, 6),
		seg("BA", locLHR, locJFK, 0, 10),
		seg("AA", locJFK, locBOS, 0, 20),
	)
}

func TestConcurringCarriers(t *testing.T) {
	tests := []struct {
		name   string
		valCxr string
		record *domain.NonConcurRecord
		t190   []domain.CarrierApplEntry
		want   []string
	}{
		{
			name:   "no record concurs with itself",
			valCxr: "LH",
			want:   []string{"LH"},
		},
		{
			name:   "no record and not flying",
			valCxr: "UA",
		},
		{
			name:   "record without table concurs with everyone",
			valCxr: "LH",
			record: &domain.NonConcurRecord{Carrier: "LH"},
			want:   []string{"LH", "BA", "AA"},
		},
		{
			name:   "self application excluded",
			valCxr: "LH",
			record: &domain.NonConcurRecord{Carrier: "LH", SelfAppl: domain.IndicatorX},
			want:   []string{"BA", "AA"},
		},
		{
			name:   "table limits the other carriers",
			valCxr: "LH",
			record: &domain.NonConcurRecord{Carrier: "LH", CarrierApplTblItemNo: 5},
			t190:   []domain.CarrierApplEntry{{Carrier: "BA"}, {Carrier: "AA", ApplInd: domain.IndicatorX}},
			want:   []string{"LH", "BA"},
		},
		{
			name:   "validating carrier off the itinerary",
			valCxr: "UA",
			record: &domain.NonConcurRecord{Carrier: "UA", CarrierApplTblItemNo: 5},
			t190:   []domain.CarrierApplEntry{{Carrier: domain.DollarCarrier}},
			want:   []string{"LH", "BA", "AA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ds := domain.NewMockSurchargeDataSource(ctrl)
			ds.EXPECT().NonConcurrence(gomock.Any(), tt.valCxr).Return(tt.record, nil)
			if tt.record != nil && tt.record.CarrierApplTblItemNo != 0 {
				ds.EXPECT().CarrierApplication(gomock.Any(), tt.record.CarrierApplTblItemNo).Return(tt.t190, nil)
			}

			got, err := concurringCarriers(context.Background(), ds, interlineLH(), tt.valCxr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConcurringCarriers_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("connection reset")
	ds := domain.NewMockSurchargeDataSource(ctrl)
	ds.EXPECT().NonConcurrence(gomock.Any(), "LH").Return(nil, boom)

	_, err := concurringCarriers(context.Background(), ds, interlineLH(), "LH")
	assert.ErrorIs(t, err, boom)
}

func TestCarrierOrder(t *testing.T) {
	contexts := []*valCxrContext{
		{carrier: "BA", concurring: []string{"AA", "BA"}},
		{carrier: "LH", concurring: []string{"BA", "LH", "AA"}},
	}

	assert.Equal(t, []string{"LH", "AA", "BA"}, carrierOrder(contexts, "LH"))
	assert.Equal(t, []string{"AA", "BA", "LH"}, carrierOrder(contexts, "AA"))
	assert.Equal(t, []string{"AA", "BA", "LH"}, carrierOrder(contexts, "UA"))
	assert.Empty(t, carrierOrder(nil, "LH"))
}

func TestValidatingCarriers(t *testing.T) {
	it := interlineLH()
	assert.Equal(t, []string{"LH"}, validatingCarriers(it))

	it.ValidatingCarriers = nil
	assert.Equal(t, []string{"LH"}, validatingCarriers(it), "first marketing carrier")

	it.ValidatingCarriers = []string{"BA", "LH"}
	assert.Equal(t, []string{"BA", "LH"}, validatingCarriers(it))
}
