package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for feed ingestion and storage.
type Metrics struct {
	FetchRuns           *prometheus.CounterVec // labels: outcome={success,<error category>}
	AsteroidsNormalized prometheus.Counter
	AsteroidsStored     prometheus.Counter
	UpstreamDuration    prometheus.Histogram
	StoreErrors         *prometheus.CounterVec // labels: op={create,get,list,update,delete}
}

func newCollectors() *Metrics {
	return &Metrics{
		FetchRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asteroid_tracker",
			Name:      "fetch_runs_total",
			Help:      "Fetch-and-store invocations by outcome.",
		}, []string{"outcome"}),
		AsteroidsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "asteroid_tracker",
			Name:      "asteroids_normalized_total",
			Help:      "Asteroid records produced from upstream feeds.",
		}),
		AsteroidsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "asteroid_tracker",
			Name:      "asteroids_stored_total",
			Help:      "Asteroid records created in the store.",
		}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "asteroid_tracker",
			Name:      "upstream_request_duration_seconds",
			Help:      "NeoWs feed request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asteroid_tracker",
			Name:      "store_errors_total",
			Help:      "Store failures by operation.",
		}, []string{"op"}),
	}
}

// NewMetrics creates the collectors and registers them with the default registry.
func NewMetrics() *Metrics {
	m := newCollectors()
	prometheus.MustRegister(
		m.FetchRuns,
		m.AsteroidsNormalized,
		m.AsteroidsStored,
		m.UpstreamDuration,
		m.StoreErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build
// many instances without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newCollectors()
}

// The recording helpers below are no-ops on a nil *Metrics.

func (m *Metrics) RecordFetchRun(outcome string) {
	if m == nil {
		return
	}
	m.FetchRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordNormalized(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.AsteroidsNormalized.Add(float64(n))
}

func (m *Metrics) RecordStored(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.AsteroidsStored.Add(float64(n))
}

func (m *Metrics) ObserveUpstream(d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordStoreError(op string) {
	if m == nil {
		return
	}
	m.StoreErrors.WithLabelValues(op).Inc()
}
