package requestcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dedupeStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "obzr_client",
		Subsystem: "request_cache",
		Name:      "producers_started_total",
		Help:      "Producer invocations started by the cache.",
	})

	dedupeSharedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "obzr_client",
		Subsystem: "request_cache",
		Name:      "joins_total",
		Help:      "Callers that attached to an already-pending producer.",
	})

	dedupeExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "obzr_client",
		Subsystem: "request_cache",
		Name:      "ttl_expired_total",
		Help:      "Entries evicted by the TTL safety net instead of settling.",
	})
)
