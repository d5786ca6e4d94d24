// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paper_finder"

// Fetch outcomes recorded on the source_fetches_total counter.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus collectors for searches. Each Metrics owns a
// private registry so several instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// SourceFetches counts adapter fetches by source and outcome.
	SourceFetches *prometheus.CounterVec

	// SourceFetchDuration observes adapter fetch latency by source.
	SourceFetchDuration *prometheus.HistogramVec

	// SourcePapers counts records returned by each source.
	SourcePapers *prometheus.CounterVec

	// Searches counts completed pipeline runs.
	Searches prometheus.Counter

	// RankedPapers observes the size of each ranked result list.
	RankedPapers prometheus.Histogram
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fetches_total",
			Help:      "Source adapter fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Source adapter fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		SourcePapers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_papers_total",
			Help:      "Paper records returned by each source.",
		}, []string{"source"}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Completed searches.",
		}),
		RankedPapers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranked_papers",
			Help:      "Number of ranked papers per search.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
	}

	m.registry.MustRegister(
		m.SourceFetches,
		m.SourceFetchDuration,
		m.SourcePapers,
		m.Searches,
		m.RankedPapers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordFetch records one adapter fetch. A non-nil err counts as an error
// outcome and contributes no papers.
func (m *Metrics) RecordFetch(source string, elapsed time.Duration, papers int, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.SourceFetches.WithLabelValues(source, outcome).Inc()
	m.SourceFetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	if err == nil {
		m.SourcePapers.WithLabelValues(source).Add(float64(papers))
	}
}

// RecordSearch records one completed search that produced ranked results.
func (m *Metrics) RecordSearch(ranked int) {
	m.Searches.Inc()
	m.RankedPapers.Observe(float64(ranked))
}
