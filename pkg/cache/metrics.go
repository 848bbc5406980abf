package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlanCacheHits tracks plans found in Redis
	PlanCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paginate_plan_cache_hits_total",
			Help: "Total number of page plan cache hits",
		},
	)

	// PlanCacheMisses tracks plans not found in Redis
	PlanCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paginate_plan_cache_misses_total",
			Help: "Total number of page plan cache misses",
		},
	)

	// PlanCacheErrors tracks cache operation errors
	PlanCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paginate_plan_cache_errors_total",
			Help: "Total number of page plan cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)

	// PlanCacheSize tracks bytes written to Redis
	PlanCacheSize = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paginate_plan_cache_written_bytes_total",
			Help: "Total number of bytes written to the page plan cache",
		},
	)
)
