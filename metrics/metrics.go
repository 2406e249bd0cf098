// Package metrics exposes Prometheus collectors for scoring activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Scores       *prometheus.CounterVec
	ScoreErrors  *prometheus.CounterVec
	CacheHits    prometheus.Counter
	BatchSeconds prometheus.Histogram

	registry *prometheus.Registry
}

// New registers the collectors on a fresh registry, so that several
// instances can coexist in tests.
func New() *Metrics {
	m := &Metrics{
		Scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solvency",
			Name:      "scores_total",
			Help:      "Z-Scores computed, by risk tier.",
		}, []string{"tier"}),
		ScoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solvency",
			Name:      "score_errors_total",
			Help:      "Scoring calls that failed, by reason.",
		}, []string{"reason"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solvency",
			Name:      "cache_hits_total",
			Help:      "Scores served from the result cache.",
		}),
		BatchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "solvency",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of batch scoring runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.Scores, m.ScoreErrors, m.CacheHits, m.BatchSeconds)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
