package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// QueryMetricsCollector handles query run lifecycle metrics
type QueryMetricsCollector struct {
	queriesRunning  *prometheus.GaugeVec
	queriesTotal    *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	queryResultSize *prometheus.HistogramVec
}

// NewQueryMetricsCollector creates a new query metrics collector
func NewQueryMetricsCollector() *QueryMetricsCollector {
	return &QueryMetricsCollector{
		// Currently running query workers
		queriesRunning: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_running",
				Help:      "Number of query workers currently fetching, by mode",
			},
			[]string{"mode"},
		),

		// Terminal outcomes
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_total",
				Help:      "Total number of finished queries by mode and terminal state",
			},
			[]string{"mode", "state"},
		),

		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "query_duration_seconds",
				Help:      "Wall time from submission to terminal state",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"mode", "state"},
		),

		queryResultSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "query_result_records",
				Help:      "Number of ranked records in a READY outcome",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"mode"},
		),
	}
}

// Register registers all query metrics with the Prometheus registry
func (c *QueryMetricsCollector) Register() error {
	return register(c.queriesRunning, c.queriesTotal, c.queryDuration, c.queryResultSize)
}

// RecordQueryStarted records a query worker starting
func (c *QueryMetricsCollector) RecordQueryStarted(mode string) {
	c.queriesRunning.WithLabelValues(mode).Inc()
}

// RecordQueryFinished records a query reaching a terminal state
func (c *QueryMetricsCollector) RecordQueryFinished(mode string, state string, duration float64, results int) {
	c.queriesRunning.WithLabelValues(mode).Dec()
	c.queriesTotal.WithLabelValues(mode, state).Inc()
	c.queryDuration.WithLabelValues(mode, state).Observe(duration)
	if state == "READY" {
		c.queryResultSize.WithLabelValues(mode).Observe(float64(results))
	}
}
