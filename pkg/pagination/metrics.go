package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// windowsTotal tracks page windows produced per category ("default" for uncategorized runs)
	windowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paginate_windows_total",
			Help: "Total number of page windows produced",
		},
		[]string{"category"},
	)

	// itemsFiltered tracks items dropped before counting
	itemsFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paginate_items_filtered_total",
			Help: "Total number of items removed before pagination",
		},
		[]string{"reason"}, // "hidden", "excluded"
	)

	// runDuration tracks the wall time of batch runs
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paginate_run_duration_seconds",
			Help:    "Duration of a batch of pagination runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)
