package vocabbuilder

import (
	"log/slog"
	"time"

	"github.com/c360studio/semstreams/metric"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semvocab/vocab"
)

// Build outcomes.
const (
	outcomeSuccess = "success"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// buildMetrics holds the Prometheus collectors for vocab-builder.
type buildMetrics struct {
	builds   *prometheus.CounterVec
	duration prometheus.Histogram
	terms    *prometheus.GaugeVec
}

// newBuildMetrics creates the collectors and registers them with registry
// when one is given.
func newBuildMetrics(registry *metric.MetricsRegistry, logger *slog.Logger) *buildMetrics {
	m := &buildMetrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "vocabbuilder_builds_total",
			Help:        "Total number of vocabulary builds by outcome",
			ConstLabels: prometheus.Labels{"component": componentName},
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "vocabbuilder_build_duration_seconds",
			Help:        "Duration of vocabulary builds including rendering",
			ConstLabels: prometheus.Labels{"component": componentName},
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		}),
		terms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "vocabbuilder_terms",
			Help:        "Number of declared terms in the last built vocabulary",
			ConstLabels: prometheus.Labels{"component": componentName},
		}, []string{"vocab", "kind"}),
	}

	if registry == nil {
		return m
	}
	if err := registry.RegisterCounterVec("vocabbuilder", "builds_total", m.builds); err != nil {
		logger.Warn("Failed to register metric", "metric", "builds_total", "error", err)
	}
	if err := registry.RegisterHistogram("vocabbuilder", "build_duration_seconds", m.duration); err != nil {
		logger.Warn("Failed to register metric", "metric", "build_duration_seconds", "error", err)
	}
	if err := registry.RegisterGaugeVec("vocabbuilder", "terms", m.terms); err != nil {
		logger.Warn("Failed to register metric", "metric", "terms", "error", err)
	}
	return m
}

func (m *buildMetrics) observe(outcome string, elapsed time.Duration) {
	m.builds.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *buildMetrics) recordTerms(v *vocab.Vocab) {
	for kind, n := range v.Stats() {
		m.terms.WithLabelValues(v.Prefix, string(kind)).Set(float64(n))
	}
}
