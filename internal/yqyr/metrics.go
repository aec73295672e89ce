package yqyr

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// calculationsTotal counts Process runs by outcome
	calculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yqyr_calculations_total",
		Help: "Total YQ/YR precalculations by result",
	}, []string{"result"}) // "ok", "precalc_failed" or "error"

	// processDuration tracks how long a precalculation takes
	processDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "yqyr_process_duration_seconds",
		Help:    "YQ/YR precalculation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	})

	// fareBasisCacheTotal counts fare-basis match cache lookups
	fareBasisCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yqyr_fare_basis_cache_total",
		Help: "Fare basis match cache lookups by outcome",
	}, []string{"outcome"}) // "hit" or "miss"

	// pathsGeneratedTotal counts paths created by forks
	pathsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yqyr_paths_generated_total",
		Help: "Total YQ/YR paths created while enumerating conditional matches",
	})
)
