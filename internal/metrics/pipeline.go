// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the scoring pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// PredictionsTotal counts scored records by resulting risk category.
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskd",
			Name:      "predictions_total",
			Help:      "Total number of scored records by risk category",
		},
		[]string{"category"},
	)

	// ImportsTotal counts batch imports by outcome.
	ImportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskd",
			Name:      "imports_total",
			Help:      "Total number of batch imports by outcome",
		},
		[]string{"status"},
	)

	// ImportRowsTotal counts rows processed by batch imports.
	ImportRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "riskd",
			Name:      "import_rows_total",
			Help:      "Total number of rows processed by batch imports",
		},
	)

	// NotificationsTotal counts notifications created by alert fan-out.
	NotificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "riskd",
			Name:      "notifications_total",
			Help:      "Total number of counselor notifications created",
		},
	)
)

// RegisterPipelineMetrics registers the pipeline counters. Called once from
// the composition root (no init()).
func RegisterPipelineMetrics() {
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(ImportsTotal)
	prometheus.MustRegister(ImportRowsTotal)
	prometheus.MustRegister(NotificationsTotal)
}
