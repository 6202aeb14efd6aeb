// Package metrics collects run counters in a private Prometheus registry and
// writes them in the text exposition format for node_exporter's textfile
// collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sbmate"

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	reg *prometheus.Registry

	lookups       *prometheus.CounterVec
	lookupLatency *prometheus.HistogramVec
	filesScored   *prometheus.CounterVec
	entities      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "lookups_total",
			Help:      "Registry existence lookups by resource and outcome.",
		}, []string{"resource", "outcome"}),
		lookupLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "lookup_duration_seconds",
			Help:      "Latency of registry existence lookups.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8),
		}, []string{"resource"}),
		filesScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_scored_total",
			Help:      "Model files processed by outcome.",
		}, []string{"outcome"}),
		entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_total",
			Help:      "Annotatable entities seen by verdict.",
		}, []string{"verdict"}),
	}
	m.reg.MustRegister(m.lookups, m.lookupLatency, m.filesScored, m.entities)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) ObserveLookup(resource, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(resource, outcome).Inc()
	m.lookupLatency.WithLabelValues(resource).Observe(d.Seconds())
}

func (m *Metrics) FileScored(ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.filesScored.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Entity(verdict string) {
	if m == nil {
		return
	}
	m.entities.WithLabelValues(verdict).Inc()
}

// WriteFile writes every collected metric to path atomically.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
