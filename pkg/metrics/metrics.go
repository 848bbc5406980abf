// Package metrics reads back the Prometheus series of site-paginate.
// The series themselves are registered with promauto next to the code that
// updates them.
//
// Pagination Metrics (pkg/pagination):
//   - paginate_windows_total{category} (Counter): Page windows produced, "default" for uncategorized runs
//   - paginate_items_filtered_total{reason} (Counter): Items removed before pagination ("hidden", "excluded")
//   - paginate_run_duration_seconds (Histogram): Duration of a batch of runs
//
// Site Metrics (pkg/site):
//   - paginate_runs_total{outcome} (Counter): Runs by outcome ("ok", "skipped_config", "skipped_template")
//   - paginate_pages_emitted_total (Counter): Numbered pages added to sites
//
// Plan Cache Metrics (pkg/cache):
//   - paginate_plan_cache_hits_total (Counter): Stored plans found
//   - paginate_plan_cache_misses_total (Counter): Stored plans not found
//   - paginate_plan_cache_errors_total{operation} (Counter): Redis operation errors
//   - paginate_plan_cache_written_bytes_total (Counter): Bytes written to Redis
//
// Feed Metrics (pkg/ingest):
//   - paginate_feed_retries_total (Counter): Feed download retries
//   - paginate_feed_retry_exhausted_total (Counter): Feed downloads that ran out of attempts
//
// Example Prometheus Queries:
//
//   # Skipped run ratio
//   sum(rate(paginate_runs_total{outcome=~"skipped_.*"}[1h])) /
//   sum(rate(paginate_runs_total[1h]))
//
//   # Plan cache hit rate
//   rate(paginate_plan_cache_hits_total[1h]) /
//   (rate(paginate_plan_cache_hits_total[1h]) + rate(paginate_plan_cache_misses_total[1h]))
//
//   # P95 batch duration
//   histogram_quantile(0.95, rate(paginate_run_duration_seconds_bucket[1h]))
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Prefix is the name prefix shared by all site-paginate metrics.
const Prefix = "paginate_"

// Registry is the default Prometheus registry used by site-paginate.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the registry metrics are read back from.
var Gatherer prometheus.Gatherer = prometheus.DefaultGatherer

// Sample is the current value of one counter or gauge series, or the
// observation count of a histogram.
type Sample struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

// Snapshot returns the current values of all site-paginate series sorted
// by name. Series without observations are omitted.
func Snapshot() ([]Sample, error) {
	families, err := Gatherer.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), Prefix) {
			continue
		}
		for _, m := range family.GetMetric() {
			value, ok := sampleValue(family.GetType(), m)
			if !ok || value == 0 {
				continue
			}
			samples = append(samples, Sample{
				Name:   family.GetName(),
				Labels: labels(m),
				Value:  value,
			})
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Name < samples[j].Name
	})
	return samples, nil
}

func sampleValue(t dto.MetricType, m *dto.Metric) (float64, bool) {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue(), true
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue(), true
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount()), true
	default:
		return 0, false
	}
}

func labels(m *dto.Metric) map[string]string {
	if len(m.GetLabel()) == 0 {
		return nil
	}
	out := make(map[string]string, len(m.GetLabel()))
	for _, pair := range m.GetLabel() {
		out[pair.GetName()] = pair.GetValue()
	}
	return out
}
