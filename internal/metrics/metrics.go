package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis pipeline counters, exposed on /metrics by the server.
var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyst_analyses_total",
		Help: "Completed analyses by outcome (ok, degraded, error).",
	}, []string{"outcome"})

	AdapterFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyst_adapter_failures_total",
		Help: "Data source adapter failures by source.",
	}, []string{"source"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyst_cache_total",
		Help: "Result cache lookups by outcome (hit, miss).",
	}, []string{"outcome"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyst_analysis_duration_seconds",
		Help:    "Wall time of one Analyze call.",
		Buckets: prometheus.DefBuckets,
	})
)
