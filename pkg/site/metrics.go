package site

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// runsTotal tracks pagination runs by outcome
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paginate_runs_total",
			Help: "Total number of pagination runs by outcome",
		},
		[]string{"outcome"}, // "ok", "skipped_config", "skipped_template"
	)

	// pagesEmitted tracks numbered pages appended to sites
	pagesEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paginate_pages_emitted_total",
			Help: "Total number of numbered pages added to sites",
		},
	)
)
