package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks snapshot cache hits by store backend.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweeper_cache_hits_total",
			Help: "Total number of catalog snapshot cache hits",
		},
		[]string{"store"}, // "redis", "memory"
	)

	// CacheMisses tracks snapshot cache misses.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweeper_cache_misses_total",
			Help: "Total number of catalog snapshot cache misses",
		},
	)

	// CacheErrors tracks cache operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweeper_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "put"
	)
)
