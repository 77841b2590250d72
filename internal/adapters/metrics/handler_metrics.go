package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HandlerMetricsCollector handles mediator request execution metrics
type HandlerMetricsCollector struct {
	handlerDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewHandlerMetricsCollector creates a new handler metrics collector
func NewHandlerMetricsCollector() *HandlerMetricsCollector {
	return &HandlerMetricsCollector{
		// Handler execution duration histogram
		handlerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "handler_duration_seconds",
				Help:      "Query handler execution duration distribution",
				Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.0, 3.0, 5.0, 10.0, 30.0},
			},
			[]string{"request", "status"},
		),

		// Handled request counter
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "handler_requests_total",
				Help:      "Total number of mediator requests handled by type and status",
			},
			[]string{"request", "status"},
		),
	}
}

// Register registers all handler metrics with the Prometheus registry
func (c *HandlerMetricsCollector) Register() error {
	return register(c.handlerDuration, c.requestsTotal)
}

// RecordRequestExecution records one handled mediator request
func (c *HandlerMetricsCollector) RecordRequestExecution(requestName string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	c.handlerDuration.WithLabelValues(requestName, status).Observe(duration)
	c.requestsTotal.WithLabelValues(requestName, status).Inc()
}
