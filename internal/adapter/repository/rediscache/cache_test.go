package rediscache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
)

func testFees(carrier string) []*domain.FeeRecord {
	return []*domain.FeeRecord{
		{Carrier: carrier, TaxCode: "YQ", SubCode: "F", SeqNo: 100, Amount: decimal.NewFromInt(40), Currency: "EUR", FeeApplInd: domain.FeeApplPerDirectionMax},
		{Carrier: carrier, TaxCode: "YR", SubCode: "I", SeqNo: 200, Amount: decimal.NewFromInt(5), Currency: "EUR", SectorPortionInd: domain.PortionInd},
	}
}

// unreachableClient points at a closed port so every command fails fast.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestSource_ImplementsInterface(t *testing.T) {
	var _ domain.SurchargeDataSource = (*Source)(nil)
}

func TestNew_DefaultTTL(t *testing.T) {
	s := New(nil, unreachableClient(), 0, zerolog.Nop())
	assert.Equal(t, DefaultTTL, s.ttl)

	s = New(nil, unreachableClient(), time.Minute, zerolog.Nop())
	assert.Equal(t, time.Minute, s.ttl)
}

func TestSource_RedisDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := domain.NewMockSurchargeDataSource(ctrl)
	ctx := context.Background()

	next.EXPECT().FeesByCarrier(gomock.Any(), "LH").Return(testFees("LH"), nil).Times(2)
	next.EXPECT().NonConcurrence(gomock.Any(), "LH").Return(nil, nil)

	client := unreachableClient()
	defer client.Close()
	s := New(next, client, time.Minute, zerolog.Nop())

	for i := 0; i < 2; i++ {
		fees, err := s.FeesByCarrier(ctx, "LH")
		require.NoError(t, err)
		assert.Len(t, fees, 2)
	}

	rec, err := s.NonConcurrence(ctx, "LH")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSource_SourceErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := domain.NewMockSurchargeDataSource(ctrl)
	boom := domain.NewDataError("fees LH", errors.New("disk on fire"))

	next.EXPECT().FeesByCarrier(gomock.Any(), "LH").Return(nil, boom)
	next.EXPECT().NonConcurrence(gomock.Any(), "LH").Return(nil, boom)

	s := New(next, unreachableClient(), time.Minute, zerolog.Nop())

	_, err := s.FeesByCarrier(context.Background(), "LH")
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)

	_, err = s.NonConcurrence(context.Background(), "LH")
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestSource_PassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := domain.NewMockSurchargeDataSource(ctrl)
	ctx := context.Background()

	next.EXPECT().CarrierApplication(gomock.Any(), 7).Return([]domain.CarrierApplEntry{{Carrier: "LH"}}, nil)
	next.EXPECT().CarrierFlights(gomock.Any(), 9).Return([]domain.CarrierFlightEntry{{Flt1: domain.AnyFlight}}, nil)
	next.EXPECT().Zone(gomock.Any(), "ATP", "210").Return([]domain.LocKey{{Type: domain.LocTypeNation, Code: "DE"}}, nil)

	s := New(next, unreachableClient(), time.Minute, zerolog.Nop())

	t190, err := s.CarrierApplication(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, t190, 1)

	t186, err := s.CarrierFlights(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.AnyFlight, t186[0].Flt1)

	zone, err := s.Zone(ctx, "ATP", "210")
	require.NoError(t, err)
	assert.Equal(t, "DE", zone[0].Code)
}

// TestSource_Redis runs against a real server when YQYR_TEST_REDIS_ADDR is set.
func TestSource_Redis(t *testing.T) {
	addr := os.Getenv("YQYR_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("YQYR_TEST_REDIS_ADDR not set; skipping redis cache tests")
	}

	ctx := context.Background()
	client := NewClient(addr)
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	ctrl := gomock.NewController(t)
	next := domain.NewMockSurchargeDataSource(ctrl)
	next.EXPECT().FeesByCarrier(gomock.Any(), "Z8").Return(testFees("Z8"), nil).Times(2)
	next.EXPECT().NonConcurrence(gomock.Any(), "Z8").Return(nil, nil).Times(1)

	s := New(next, client, time.Minute, zerolog.Nop())
	require.NoError(t, s.Invalidate(ctx, "Z8"))

	first, err := s.FeesByCarrier(ctx, "Z8")
	require.NoError(t, err)
	cached, err := s.FeesByCarrier(ctx, "Z8")
	require.NoError(t, err)

	require.Len(t, cached, 2)
	assert.Equal(t, first[0].SeqNo, cached[0].SeqNo)
	assert.True(t, first[0].Amount.Equal(cached[0].Amount))
	assert.Equal(t, domain.FeeApplPerDirectionMax, cached[0].FeeApplInd)
	assert.Equal(t, domain.PortionInd, cached[1].SectorPortionInd)
	assert.Equal(t, domain.SectorInd, cached[0].SectorPortionInd)

	for i := 0; i < 2; i++ {
		rec, err := s.NonConcurrence(ctx, "Z8")
		require.NoError(t, err)
		assert.Nil(t, rec)
	}

	require.NoError(t, s.Invalidate(ctx, "Z8"))
	_, err = s.FeesByCarrier(ctx, "Z8")
	require.NoError(t, err)
}
