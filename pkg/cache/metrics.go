package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits tracks cache hits by layer (redis)
	Hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tm_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"layer"}, // "redis"
	)

	// Misses tracks cache misses
	Misses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tm_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// Size tracks bytes written to the cache by layer
	Size = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tm_cache_written_bytes_total",
			Help: "Total bytes written to the response cache",
		},
		[]string{"layer"}, // "redis"
	)

	// Errors tracks cache operation errors
	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tm_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
