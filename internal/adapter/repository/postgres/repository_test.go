package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/retry"
)

// fakeRow replays a scripted Scan result.
type fakeRow struct {
	err  error
	scan func(dest ...any)
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	r.scan(dest...)
	return nil
}

// fakeDB answers QueryRow from a script and fails every Query.
type fakeDB struct {
	rows     []fakeRow
	queryErr error
	calls    int
}

func (f *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	f.calls++
	return pgconn.CommandTag{}, f.queryErr
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	f.calls++
	return nil, f.queryErr
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	row := f.rows[min(f.calls, len(f.rows)-1)]
	f.calls++
	return row
}

func newTestRepository(db Querier) *Repository {
	repo := New(db, zerolog.Nop())
	repo.retry = repo.retry.WithInitialDelay(time.Millisecond).WithMaxDelay(2 * time.Millisecond)
	return repo
}

func TestRepository_ImplementsInterface(t *testing.T) {
	var _ domain.SurchargeDataSource = (*Repository)(nil)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, false},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	err := classify("fees LH", &pgconn.PgError{Code: "08006"})
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.True(t, domain.IsTransient(err))

	err = classify("fees LH", &pgconn.PgError{Code: "42P01"})
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.False(t, domain.IsTransient(err))

	err = classify("fees LH", context.DeadlineExceeded)
	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestRepository_NonConcurrence(t *testing.T) {
	found := fakeRow{scan: func(dest ...any) {
		*dest[0].(*string) = "X"
		*dest[1].(*int) = 42
	}}

	tests := []struct {
		name      string
		rows      []fakeRow
		want      *domain.NonConcurRecord
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "found",
			rows:      []fakeRow{found},
			want:      &domain.NonConcurRecord{Carrier: "LH", SelfAppl: domain.IndicatorX, CarrierApplTblItemNo: 42},
			wantCalls: 1,
		},
		{
			name:      "not filed",
			rows:      []fakeRow{{err: pgx.ErrNoRows}},
			wantCalls: 1,
		},
		{
			name:      "transient failure is retried",
			rows:      []fakeRow{{err: &pgconn.PgError{Code: "08006"}}, found},
			want:      &domain.NonConcurRecord{Carrier: "LH", SelfAppl: domain.IndicatorX, CarrierApplTblItemNo: 42},
			wantCalls: 2,
		},
		{
			name:      "permanent failure is not retried",
			rows:      []fakeRow{{err: &pgconn.PgError{Code: "42P01"}}, found},
			wantErr:   true,
			wantCalls: 1,
		},
		{
			name:      "transient failure exhausts attempts",
			rows:      []fakeRow{{err: &pgconn.PgError{Code: "57P01"}}},
			wantErr:   true,
			wantCalls: retry.RepositoryConfig.MaxAttempts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{rows: tt.rows}
			repo := newTestRepository(db)

			got, err := repo.NonConcurrence(context.Background(), "LH")

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrDataUnavailable)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, db.calls)
		})
	}
}

func TestRepository_QueryFailures(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{queryErr: &pgconn.PgError{Code: "08001"}}
	repo := newTestRepository(db)

	_, err := repo.FeesByCarrier(ctx, "LH")
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.Contains(t, err.Error(), "fees LH")
	assert.Equal(t, 3, db.calls)

	db.calls = 0
	db.queryErr = &pgconn.PgError{Code: "42703"}
	_, err = repo.CarrierApplication(ctx, 7)
	assert.ErrorContains(t, err, "table 190 item 7")
	assert.Equal(t, 1, db.calls)

	_, err = repo.CarrierFlights(ctx, 9)
	assert.ErrorContains(t, err, "table 186 item 9")

	_, err = repo.Zone(ctx, "ATP", "210")
	assert.ErrorContains(t, err, "zone ATP/210")

	err = repo.Migrate(ctx)
	assert.ErrorContains(t, err, "migrate yqyr schema")
}

func TestIndicator(t *testing.T) {
	assert.Equal(t, domain.Blank, indicator(""))
	assert.Equal(t, domain.IndicatorX, indicator("X"))
}

// TestRepository_Postgres runs against a real database when YQYR_TEST_POSTGRES_DSN is set.
func TestRepository_Postgres(t *testing.T) {
	dsn := os.Getenv("YQYR_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("YQYR_TEST_POSTGRES_DSN not set; skipping postgres repository tests")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	repo := New(pool, zerolog.Nop())
	require.NoError(t, repo.Migrate(ctx))

	carrier := "Z9"
	_, err = pool.Exec(ctx, `DELETE FROM yqyr_fees WHERE carrier = $1`, carrier)
	require.NoError(t, err)

	for _, seq := range []int64{300, 100, 200} {
		require.NoError(t, repo.InsertFee(ctx, &domain.FeeRecord{
			Carrier:  carrier,
			TaxCode:  "YQ",
			SubCode:  "F",
			SeqNo:    seq,
			Amount:   decimal.NewFromInt(seq / 10),
			Currency: "EUR",
		}))
	}

	fees, err := repo.FeesByCarrier(ctx, carrier)
	require.NoError(t, err)
	require.Len(t, fees, 3)
	assert.Equal(t, int64(100), fees[0].SeqNo)
	assert.Equal(t, int64(300), fees[2].SeqNo)
	assert.Equal(t, "30", fees[2].Amount.String())
	assert.Equal(t, domain.SectorInd, fees[0].SectorPortionInd)

	rec, err := repo.NonConcurrence(ctx, carrier)
	require.NoError(t, err)
	assert.Nil(t, rec)
}
