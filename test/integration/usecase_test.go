package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/flight-search/yqyr-surcharge-engine/internal/adapter/http"
	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/usecase"
	"github.com/flight-search/yqyr-surcharge-engine/test/mock"
)

// defaultUseCaseRequest converts DefaultQuoteRequest the way the handler does.
func defaultUseCaseRequest(t *testing.T) usecase.QuoteRequest {
	t.Helper()
	body := DefaultQuoteRequest()
	require.NoError(t, body.Validate())
	req, err := httpAdapter.ToQuoteRequest(&body)
	require.NoError(t, err)
	return req
}

func newBundleUseCase(t *testing.T) (usecase.QuoteUseCase, *mock.DataSource) {
	t.Helper()
	repo, err := LoadBundle()
	require.NoError(t, err)
	ds := mock.NewDataSource(repo)
	uc, err := CreateUseCase(ds, repo.Rates())
	require.NoError(t, err)
	return uc, ds
}

// TestQuote_FareMarketPaths tests that every fare market path gets its own
// calculator and the passenger type bound is the lowest of them.
func TestQuote_FareMarketPaths(t *testing.T) {
	// Arrange
	uc, _ := newBundleUseCase(t)
	req := defaultUseCaseRequest(t)
	req.FareMarketPaths = []*domain.FareMarketPath{
		{ID: "fmp-through", Markets: []domain.FareMarket{{FirstSeg: 0, LastSeg: 1, FareBases: []string{"YOW"}}}},
		{ID: "fmp-split", Markets: []domain.FareMarket{
			{FirstSeg: 0, LastSeg: 0, FareBases: []string{"BOW"}},
			{FirstSeg: 1, LastSeg: 1, FareBases: []string{"YOW"}},
		}},
	}
	fp := WholeJourneyFarePath("fp-1", "ADT")
	fp.FareMarketPathID = "fmp-split"
	req.FarePaths = []*domain.FarePath{fp}

	// Act
	resp, err := uc.Quote(context.Background(), req)

	// Assert
	require.NoError(t, err)
	require.Len(t, resp.PaxTypes, 1)
	adt := resp.PaxTypes[0]

	require.Len(t, adt.FareMarketPaths, 2)
	assert.Equal(t, "fmp-through", adt.FareMarketPaths[0].ID)
	assert.Equal(t, "fmp-split", adt.FareMarketPaths[1].ID)
	for _, fq := range adt.FareMarketPaths {
		assert.True(t, adt.LowerBound.LessThanOrEqual(fq.LowerBound), fq.ID)
	}
	assert.Equal(t, 2, resp.Metadata.Calculators)

	require.Len(t, adt.FarePaths, 1)
	assert.Equal(t, "60", adt.FarePaths[0].Charge.String())
}

// TestQuote_Shopping tests that shopping matches stay inside each fare's market.
func TestQuote_Shopping(t *testing.T) {
	// Arrange
	uc, _ := newBundleUseCase(t)
	req := defaultUseCaseRequest(t)
	req.PaxTypeFares = []*domain.PaxTypeFare{
		{FareBasis: "YOW", FirstSeg: 0, LastSeg: 0},
		{FareBasis: "YOW", FirstSeg: 1, LastSeg: 1},
		{FareBasis: "YOW", FirstSeg: 0, LastSeg: 1, PaxType: "CNN"},
	}

	// Act
	resp, err := uc.Quote(context.Background(), req)

	// Assert
	require.NoError(t, err)
	adt := resp.PaxTypes[0]
	require.Len(t, adt.Shopping, 2, "the CNN fare is not shopped for ADT")

	for i, sq := range adt.Shopping {
		ptf := req.PaxTypeFares[i]
		assert.Equal(t, ptf.FirstSeg, sq.FirstSeg)
		assert.NotEmpty(t, sq.Fees)
		for _, fee := range sq.Fees {
			assert.True(t, ptf.Covers(fee.FirstSeg), "fee on segment %d outside %d-%d", fee.FirstSeg, ptf.FirstSeg, ptf.LastSeg)
			assert.Equal(t, "LH", fee.Carrier)
		}
		assert.True(t, sq.Total.IsPositive())
	}
}

// TestQuote_CarrierDataError tests that a failing carrier lookup fails the quote
// with a data error.
func TestQuote_CarrierDataError(t *testing.T) {
	// Arrange
	repo, err := LoadBundle()
	require.NoError(t, err)
	ds := mock.NewDataSource(repo).WithCarrierError("LH", errors.New("connection reset"))
	uc, err := CreateUseCase(ds, repo.Rates())
	require.NoError(t, err)

	// Act
	resp, err := uc.Quote(context.Background(), defaultUseCaseRequest(t))

	// Assert
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.Contains(t, err.Error(), "fees LH")
	assert.Equal(t, 1, ds.FeeCalls("LH"))
}

// TestQuote_ContextCancellation tests that a cancelled caller stops the quote.
func TestQuote_ContextCancellation(t *testing.T) {
	// Arrange
	uc, _ := newBundleUseCase(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	resp, err := uc.Quote(ctx, defaultUseCaseRequest(t))

	// Assert
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestQuote_EmptyFilings tests that an itinerary without filings carries no surcharge.
func TestQuote_EmptyFilings(t *testing.T) {
	// Arrange
	uc, err := CreateUseCase(mock.NewDataSource(nil), nil)
	require.NoError(t, err)
	req := defaultUseCaseRequest(t)
	req.FarePaths = []*domain.FarePath{WholeJourneyFarePath("fp-1", "ADT")}

	// Act
	resp, err := uc.Quote(context.Background(), req)

	// Assert
	require.NoError(t, err)
	adt := resp.PaxTypes[0]
	assert.True(t, adt.LowerBound.IsZero())
	require.Len(t, adt.FarePaths, 1)
	assert.True(t, adt.FarePaths[0].Charge.IsZero())
	assert.Empty(t, adt.FarePaths[0].Fees)
}
