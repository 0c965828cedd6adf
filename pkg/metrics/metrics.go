// Package metrics provides Prometheus collectors for construction
// outcomes: calls per input kind, rows ingested, and time spent in type
// inference. Metrics register automatically via promauto.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Constructions counts construction calls by input kind and outcome
	// (success or error).
	Constructions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strata_constructions_total",
			Help: "Total construction calls by input kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// RowsIngested counts rows materialized into tables and columns by
	// input kind.
	RowsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strata_rows_ingested_total",
			Help: "Total rows materialized by input kind",
		},
		[]string{"kind"},
	)

	// InferenceDuration observes the time spent inferring column types.
	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "strata_inference_duration_seconds",
			Help:    "Time spent in per-column type inference",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
	)
)

// RecordConstruction records one construction call outcome
func RecordConstruction(kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	Constructions.WithLabelValues(kind, outcome).Inc()
}

// RecordRows records rows materialized for an input kind
func RecordRows(kind string, rows int) {
	RowsIngested.WithLabelValues(kind).Add(float64(rows))
}

// ObserveInference records one inference pass duration
func ObserveInference(d time.Duration) {
	InferenceDuration.Observe(d.Seconds())
}
