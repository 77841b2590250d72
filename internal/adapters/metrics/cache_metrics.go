package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetricsCollector handles result cache metrics
type CacheMetricsCollector struct {
	lookupsTotal   *prometheus.CounterVec
	evictionsTotal prometheus.Counter
	entries        prometheus.Gauge
}

// NewCacheMetricsCollector creates a new cache metrics collector
func NewCacheMetricsCollector() *CacheMetricsCollector {
	return &CacheMetricsCollector{
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_lookups_total",
				Help:      "Result cache lookups by endpoint and result (hit/miss)",
			},
			[]string{"endpoint", "result"},
		),

		evictionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_evictions_total",
				Help:      "Entries evicted, expired or purged from the result cache",
			},
		),

		entries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_entries",
				Help:      "Number of entries currently held by the result cache",
			},
		),
	}
}

// Register registers all cache metrics with the Prometheus registry
func (c *CacheMetricsCollector) Register() error {
	return register(c.lookupsTotal, c.evictionsTotal, c.entries)
}

// RecordCacheHit records a cache hit
func (c *CacheMetricsCollector) RecordCacheHit(endpoint string) {
	c.lookupsTotal.WithLabelValues(endpoint, "hit").Inc()
}

// RecordCacheMiss records a cache miss
func (c *CacheMetricsCollector) RecordCacheMiss(endpoint string) {
	c.lookupsTotal.WithLabelValues(endpoint, "miss").Inc()
}

// RecordCacheEviction records an eviction
func (c *CacheMetricsCollector) RecordCacheEviction() {
	c.evictionsTotal.Inc()
}

// RecordCacheSize records the current entry count
func (c *CacheMetricsCollector) RecordCacheSize(entries int) {
	c.entries.Set(float64(entries))
}
