package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// ProviderMetricsCollector handles all provider request metrics
type ProviderMetricsCollector struct {
	// Request metrics
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	rateLimitWait     *prometheus.HistogramVec
	circuitRejections *prometheus.CounterVec
}

// NewProviderMetricsCollector creates a new provider metrics collector
func NewProviderMetricsCollector() *ProviderMetricsCollector {
	return &ProviderMetricsCollector{
		// Total provider requests by endpoint and status code
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_requests_total",
				Help:      "Total number of provider requests by endpoint and status code (0 = transport error)",
			},
			[]string{"endpoint", "status_code"},
		),

		// Provider request duration histogram
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_request_duration_seconds",
				Help:      "Provider request duration distribution",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"endpoint"},
		),

		// Rate limit wait time histogram
		rateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_rate_limit_wait_seconds",
				Help:      "Time spent waiting for the provider rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"endpoint"},
		),

		// Requests refused while the circuit was open
		circuitRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "provider_circuit_rejections_total",
				Help:      "Total number of provider requests refused by the open circuit breaker",
			},
			[]string{"endpoint"},
		),
	}
}

// Register registers all provider metrics with the Prometheus registry
func (c *ProviderMetricsCollector) Register() error {
	return register(
		c.requestsTotal,
		c.requestDuration,
		c.rateLimitWait,
		c.circuitRejections,
	)
}

// RecordProviderRequest records a provider request completion
func (c *ProviderMetricsCollector) RecordProviderRequest(endpoint string, statusCode int, duration float64) {
	c.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordRateLimitWait records time spent waiting for rate limiter
func (c *ProviderMetricsCollector) RecordRateLimitWait(endpoint string, duration float64) {
	c.rateLimitWait.WithLabelValues(endpoint).Observe(duration)
}

// RecordCircuitRejection records a request refused by the circuit breaker
func (c *ProviderMetricsCollector) RecordCircuitRejection(endpoint string) {
	c.circuitRejections.WithLabelValues(endpoint).Inc()
}
