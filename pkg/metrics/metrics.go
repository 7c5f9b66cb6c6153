// Package metrics documents the Prometheus metrics exposed by the Token
// Metrics client. Metrics are defined via promauto in their owning
// packages (client, cache, pagination) to keep them next to the code that
// drives them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the Prometheus registerer used by all client metrics.
var Registry = prometheus.DefaultRegisterer

// Handler returns an HTTP handler exposing all registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Reference
//
// Request metrics (pkg/client):
//   - tm_requests_total{endpoint, status} (Counter): requests by endpoint and HTTP status
//   - tm_request_duration_seconds{endpoint} (Histogram): request duration
//   - tm_errors_total{class} (Counter): errors by class (client, server, network)
//
// Aggregation metrics (pkg/pagination):
//   - tm_chunks_fetched_total{endpoint} (Counter): date-window chunks fetched
//   - tm_fetch_duration_seconds{endpoint} (Histogram): full aggregated fetch duration
//
// Cache metrics (pkg/cache):
//   - tm_cache_hits_total{layer="redis"} (Counter): response cache hits
//   - tm_cache_misses_total (Counter): response cache misses
//   - tm_cache_written_bytes_total{layer="redis"} (Counter): bytes written to cache
//   - tm_cache_errors_total{operation} (Counter): cache operation errors
//
// Example queries:
//
//	# Cache hit rate
//	sum(rate(tm_cache_hits_total[5m])) /
//	(sum(rate(tm_cache_hits_total[5m])) + sum(rate(tm_cache_misses_total[5m])))
//
//	# Chunks per fetch
//	rate(tm_chunks_fetched_total[5m]) / rate(tm_fetch_duration_seconds_count[5m])
