// Package metrics provides the Prometheus registry reference for the
// sweeper. All metrics are defined in their respective packages (catalog,
// removal, merchant, cache, ratelimit) to maintain modularity and avoid
// circular dependencies.
//
// This package documents the available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the sweeper.
// All metrics are automatically registered via promauto in their packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Walk Metrics (pkg/catalog):
//   - sweeper_pages_fetched_total (Counter): Catalog pages fetched
//   - sweeper_items_aggregated_total (Counter): Items accumulated
//   - sweeper_walk_failures_total (Counter): Walks terminated by a fetch failure
//
// Removal Metrics (pkg/removal):
//   - sweeper_removals_total{result} (Counter): Attempts by result (removed, failed, skipped)
//   - sweeper_removal_batch_duration_seconds (Histogram): Batch durations
//
// Transport Metrics (pkg/merchant):
//   - sweeper_api_requests_total{operation, status} (Counter): Requests by operation and HTTP status
//   - sweeper_api_request_duration_seconds{operation} (Histogram): Request duration
//   - sweeper_api_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Cache Metrics (pkg/cache):
//   - sweeper_cache_hits_total{store} (Counter): Snapshot cache hits
//   - sweeper_cache_misses_total (Counter): Snapshot cache misses
//   - sweeper_cache_errors_total{operation} (Counter): Cache operation errors
//
// Rate Limit Metrics (pkg/ratelimit):
//   - sweeper_rate_limit_remaining (Gauge): Requests left in the current window
//   - sweeper_rate_limit_blocks_total (Counter): Requests blocked
//   - sweeper_rate_limit_throttles_total (Counter): Requests throttled
//
// Example Prometheus Queries:
//
//   # Removal failure rate
//   rate(sweeper_removals_total{result="failed"}[5m]) /
//   rate(sweeper_removals_total[5m])
//
//   # Cache hit rate
//   sum(rate(sweeper_cache_hits_total[5m])) /
//   (sum(rate(sweeper_cache_hits_total[5m])) + sum(rate(sweeper_cache_misses_total[5m])))
//
//   # P95 API latency by operation
//   histogram_quantile(0.95, rate(sweeper_api_request_duration_seconds_bucket[5m]))
