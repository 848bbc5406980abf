package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegistry(t *testing.T) {
	if Registry == nil {
		t.Error("Registry should not be nil")
	}

	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default Prometheus registerer")
	}
}

func TestSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paginate_test_total",
		Help: "test counter",
	}, []string{"kind"})
	other := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unrelated_total",
		Help: "not ours",
	})
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "paginate_test_seconds",
		Help: "test histogram",
	})
	reg.MustRegister(counter, other, histogram)

	counter.WithLabelValues("a").Add(3)
	counter.WithLabelValues("b")
	other.Inc()
	histogram.Observe(0.5)
	histogram.Observe(1.5)

	prev := Gatherer
	Gatherer = reg
	defer func() { Gatherer = prev }()

	samples, err := Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %+v", samples)
	}
	if samples[0].Name != "paginate_test_seconds" || samples[0].Value != 2 {
		t.Errorf("histogram sample = %+v", samples[0])
	}
	if samples[1].Name != "paginate_test_total" || samples[1].Value != 3 || samples[1].Labels["kind"] != "a" {
		t.Errorf("counter sample = %+v", samples[1])
	}
}
