// Package postgres reads carrier filings from PostgreSQL.
package postgres

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/retry"
)

//go:embed schema.sql
var schema string

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository is a SurchargeDataSource backed by PostgreSQL.
type Repository struct {
	db     Querier
	retry  retry.Config
	logger zerolog.Logger
}

var _ domain.SurchargeDataSource = (*Repository)(nil)

// Connect opens a connection pool for dsn and verifies it.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// New creates a repository over db. Transient failures are retried with
// retry.RepositoryConfig.
func New(db Querier, logger zerolog.Logger) *Repository {
	r := &Repository{db: db, logger: logger}
	r.retry = retry.RepositoryConfig.
		WithRetryIf(domain.IsTransient).
		WithOnRetry(func(attempt int, err error, wait time.Duration) {
			r.logger.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("retrying filing lookup")
		})
	return r
}

// Migrate creates the filing tables when they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate yqyr schema: %w", err)
	}
	return nil
}

// FeesByCarrier returns the carrier's records in tax code, sub code, sequence order.
func (r *Repository) FeesByCarrier(ctx context.Context, carrier string) ([]*domain.FeeRecord, error) {
	return retry.DoWithResult(ctx, func() ([]*domain.FeeRecord, error) {
		rows, err := r.db.Query(ctx, `
			SELECT record
			FROM yqyr_fees
			WHERE carrier = $1
			ORDER BY tax_code, sub_code, seq_no`, carrier)
		if err != nil {
			return nil, classify("fees "+carrier, err)
		}
		defer rows.Close()

		var fees []*domain.FeeRecord
		for rows.Next() {
			var raw []byte
			if err := rows.Scan(&raw); err != nil {
				return nil, classify("fees "+carrier, err)
			}
			var fee domain.FeeRecord
			if err := json.Unmarshal(raw, &fee); err != nil {
				return nil, domain.NewDataError("fees "+carrier, err)
			}
			fee.Normalize()
			fees = append(fees, &fee)
		}
		if err := rows.Err(); err != nil {
			return nil, classify("fees "+carrier, err)
		}
		return fees, nil
	}, r.retry)
}

// NonConcurrence returns the carrier's non-concurrence record, or nil.
func (r *Repository) NonConcurrence(ctx context.Context, carrier string) (*domain.NonConcurRecord, error) {
	return retry.DoWithResult(ctx, func() (*domain.NonConcurRecord, error) {
		var selfAppl string
		rec := &domain.NonConcurRecord{Carrier: carrier}
		err := r.db.QueryRow(ctx, `
			SELECT self_appl, carrier_appl_tbl_item_no
			FROM yqyr_non_concurrence
			WHERE carrier = $1`, carrier,
		).Scan(&selfAppl, &rec.CarrierApplTblItemNo)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, classify("non-concurrence "+carrier, err)
		}
		rec.SelfAppl = indicator(selfAppl)
		return rec, nil
	}, r.retry)
}

// CarrierApplication returns the rows of a table 190 item.
func (r *Repository) CarrierApplication(ctx context.Context, itemNo int) ([]domain.CarrierApplEntry, error) {
	lookup := fmt.Sprintf("table 190 item %d", itemNo)
	return retry.DoWithResult(ctx, func() ([]domain.CarrierApplEntry, error) {
		rows, err := r.db.Query(ctx, `
			SELECT carrier, appl_ind
			FROM yqyr_carrier_appl
			WHERE item_no = $1
			ORDER BY line_no`, itemNo)
		if err != nil {
			return nil, classify(lookup, err)
		}
		defer rows.Close()

		var out []domain.CarrierApplEntry
		for rows.Next() {
			var e domain.CarrierApplEntry
			var appl string
			if err := rows.Scan(&e.Carrier, &appl); err != nil {
				return nil, classify(lookup, err)
			}
			e.ApplInd = indicator(appl)
			out = append(out, e)
		}
		if err := rows.Err(); err != nil {
			return nil, classify(lookup, err)
		}
		return out, nil
	}, r.retry)
}

// CarrierFlights returns the rows of a table 186 item.
func (r *Repository) CarrierFlights(ctx context.Context, itemNo int) ([]domain.CarrierFlightEntry, error) {
	lookup := fmt.Sprintf("table 186 item %d", itemNo)
	return retry.DoWithResult(ctx, func() ([]domain.CarrierFlightEntry, error) {
		rows, err := r.db.Query(ctx, `
			SELECT marketing_carrier, operating_carrier, flt1, flt2
			FROM yqyr_carrier_flights
			WHERE item_no = $1
			ORDER BY line_no`, itemNo)
		if err != nil {
			return nil, classify(lookup, err)
		}
		defer rows.Close()

		var out []domain.CarrierFlightEntry
		for rows.Next() {
			var e domain.CarrierFlightEntry
			if err := rows.Scan(&e.MarketingCarrier, &e.OperatingCarrier, &e.Flt1, &e.Flt2); err != nil {
				return nil, classify(lookup, err)
			}
			out = append(out, e)
		}
		if err := rows.Err(); err != nil {
			return nil, classify(lookup, err)
		}
		return out, nil
	}, r.retry)
}

// Zone returns the members of a vendor zone.
func (r *Repository) Zone(ctx context.Context, vendor, zone string) ([]domain.LocKey, error) {
	lookup := "zone " + vendor + "/" + zone
	return retry.DoWithResult(ctx, func() ([]domain.LocKey, error) {
		rows, err := r.db.Query(ctx, `
			SELECT loc_type, loc_code
			FROM yqyr_zones
			WHERE vendor = $1 AND zone = $2
			ORDER BY line_no`, strings.ToUpper(vendor), zone)
		if err != nil {
			return nil, classify(lookup, err)
		}
		defer rows.Close()

		var out []domain.LocKey
		for rows.Next() {
			var typ, code string
			if err := rows.Scan(&typ, &code); err != nil {
				return nil, classify(lookup, err)
			}
			out = append(out, domain.LocKey{Type: domain.LocType(typ), Code: code})
		}
		if err := rows.Err(); err != nil {
			return nil, classify(lookup, err)
		}
		return out, nil
	}, r.retry)
}

// InsertFee stores or replaces one fee record.
func (r *Repository) InsertFee(ctx context.Context, fee *domain.FeeRecord) error {
	raw, err := json.Marshal(fee)
	if err != nil {
		return fmt.Errorf("encode fee: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO yqyr_fees (carrier, tax_code, sub_code, seq_no, record)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (carrier, tax_code, sub_code, seq_no) DO UPDATE SET record = EXCLUDED.record`,
		fee.Carrier, fee.TaxCode, fee.SubCode, fee.SeqNo, raw,
	)
	if err != nil {
		return classify("insert fee", err)
	}
	return nil
}

// classify wraps a driver error into a DataError, marking connection-level and
// serialization failures transient.
func classify(lookup string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if isTransient(err) {
		return domain.NewTransientDataError(lookup, err)
	}
	return domain.NewDataError(lookup, err)
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return true
		case pgErr.Code == "40001", pgErr.Code == "40P01": // serialization failure, deadlock
			return true
		case pgErr.Code == "57P01", pgErr.Code == "57P03": // admin shutdown, cannot connect now
			return true
		}
		return false
	}
	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}

func indicator(s string) domain.Indicator {
	if s == "" {
		return domain.Blank
	}
	return domain.Indicator(s[0])
}
