// Package rediscache puts a Redis read-through cache in front of a filing source.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/flight-search/yqyr-surcharge-engine/internal/domain"
	"github.com/flight-search/yqyr-surcharge-engine/internal/infrastructure/retry"
)

const (
	feesKeyPrefix      = "yqyr:fees:%s"
	nonConcurKeyPrefix = "yqyr:nonconcur:%s"

	// DefaultTTL bounds how stale a cached filing can get.
	DefaultTTL = 10 * time.Minute
)

// lookupsTotal counts cache lookups by kind and outcome
var lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "yqyr_filing_cache_total",
	Help: "Filing cache lookups by kind and outcome",
}, []string{"kind", "outcome"}) // outcome: "hit", "miss" or "error"

// Source caches fee lists and non-concurrence records of an underlying source.
// Reference tables are passed through. Redis failures never fail a lookup; the
// underlying source answers instead.
type Source struct {
	next   domain.SurchargeDataSource
	redis  redis.Cmdable
	ttl    time.Duration
	logger zerolog.Logger
}

var _ domain.SurchargeDataSource = (*Source)(nil)

// NewClient creates a Redis client for addr.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// New wraps next. A non-positive ttl uses DefaultTTL.
func New(next domain.SurchargeDataSource, client redis.Cmdable, ttl time.Duration, logger zerolog.Logger) *Source {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Source{next: next, redis: client, ttl: ttl, logger: logger}
}

// FeesByCarrier returns the carrier's records from cache, loading them on a miss.
func (s *Source) FeesByCarrier(ctx context.Context, carrier string) ([]*domain.FeeRecord, error) {
	key := fmt.Sprintf(feesKeyPrefix, carrier)
	var fees []*domain.FeeRecord
	if s.load(ctx, "fees", key, &fees) {
		for _, f := range fees {
			f.Normalize()
		}
		return fees, nil
	}

	fees, err := s.next.FeesByCarrier(ctx, carrier)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, fees)
	return fees, nil
}

// NonConcurrence returns the carrier's record from cache, loading it on a miss.
// A missing record is cached too.
func (s *Source) NonConcurrence(ctx context.Context, carrier string) (*domain.NonConcurRecord, error) {
	key := fmt.Sprintf(nonConcurKeyPrefix, carrier)
	var rec *domain.NonConcurRecord
	if s.load(ctx, "non_concurrence", key, &rec) {
		return rec, nil
	}

	rec, err := s.next.NonConcurrence(ctx, carrier)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, rec)
	return rec, nil
}

// CarrierApplication passes through to the underlying source.
func (s *Source) CarrierApplication(ctx context.Context, itemNo int) ([]domain.CarrierApplEntry, error) {
	return s.next.CarrierApplication(ctx, itemNo)
}

// CarrierFlights passes through to the underlying source.
func (s *Source) CarrierFlights(ctx context.Context, itemNo int) ([]domain.CarrierFlightEntry, error) {
	return s.next.CarrierFlights(ctx, itemNo)
}

// Zone passes through to the underlying source.
func (s *Source) Zone(ctx context.Context, vendor, zone string) ([]domain.LocKey, error) {
	return s.next.Zone(ctx, vendor, zone)
}

// Invalidate drops the cached entries of carrier.
func (s *Source) Invalidate(ctx context.Context, carrier string) error {
	return s.redis.Del(ctx,
		fmt.Sprintf(feesKeyPrefix, carrier),
		fmt.Sprintf(nonConcurKeyPrefix, carrier),
	).Err()
}

// load decodes the cached value of key into dest and reports whether it was found.
func (s *Source) load(ctx context.Context, kind, key string, dest any) bool {
	raw, err := retry.DoWithResult(ctx, func() ([]byte, error) {
		b, err := s.redis.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, retry.NewPermanent(err)
		}
		return b, err
	}, retry.CacheConfig)

	switch {
	case errors.Is(err, redis.Nil):
		lookupsTotal.WithLabelValues(kind, "miss").Inc()
		return false
	case err != nil:
		lookupsTotal.WithLabelValues(kind, "error").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("filing cache read failed")
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		lookupsTotal.WithLabelValues(kind, "error").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return false
	}
	lookupsTotal.WithLabelValues(kind, "hit").Inc()
	return true
}

func (s *Source) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("filing cache encode failed")
		return
	}
	if err := s.redis.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("filing cache write failed")
	}
}
