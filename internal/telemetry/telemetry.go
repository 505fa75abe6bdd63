// Package telemetry counts scored models, failures, stage latencies and
// flags in a private Prometheus registry that can be dumped for the
// node_exporter textfile collector.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"tapscore-core/metrics"
	"tapscore-core/taperr"
)

type Metrics struct {
	Registry *prometheus.Registry

	models   *prometheus.CounterVec
	failures *prometheus.CounterVec
	stages   *prometheus.HistogramVec
	flags    *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		models: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tap_models_total",
			Help: "Models processed by outcome",
		}, []string{"status"}), // ok | failed
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tap_model_failures_total",
			Help: "Failed models by error kind",
		}, []string{"kind"}),
		stages: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tap_stage_duration_seconds",
			Help:    "Duration of each annotation stage",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8), // 0.5ms to ~8s
		}, []string{"stage"}),
		flags: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tap_metric_flags_total",
			Help: "Metric flags assigned, by metric and flag",
		}, []string{"metric", "flag"}),
	}
}

// ObserveStage records one annotation stage. It satisfies annotate.Observer.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.stages.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// ModelScored counts a successful model and its flags.
func (m *Metrics) ModelScored(results []metrics.Result) {
	if m == nil {
		return
	}
	m.models.WithLabelValues("ok").Inc()
	for _, r := range results {
		m.flags.WithLabelValues(r.Key, string(r.Flag)).Inc()
	}
}

// ModelFailed counts a failed model under its error kind ("other" when the
// error carries none).
func (m *Metrics) ModelFailed(err error) {
	if m == nil {
		return
	}
	m.models.WithLabelValues("failed").Inc()
	kind := "other"
	if k, ok := taperr.KindOf(err); ok {
		kind = string(k)
	}
	m.failures.WithLabelValues(kind).Inc()
}

// WriteTextfile writes the registry atomically in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
