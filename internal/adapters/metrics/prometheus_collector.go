package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "hyflipper"
	// Subsystem for query pipeline metrics
	subsystem = "pipeline"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalProviderCollector is the singleton provider request collector
	// Set by SetGlobalProviderCollector() when metrics are enabled
	globalProviderCollector ProviderMetricsRecorder

	// globalCacheCollector is the singleton result cache collector
	// Set by SetGlobalCacheCollector() when metrics are enabled
	globalCacheCollector CacheMetricsRecorder

	// globalQueryCollector is the singleton query run collector
	// Set by SetGlobalQueryCollector() when metrics are enabled
	globalQueryCollector QueryMetricsRecorder
)

// ProviderMetricsRecorder defines the interface for recording provider round trips
type ProviderMetricsRecorder interface {
	RecordProviderRequest(endpoint string, statusCode int, duration float64)
	RecordRateLimitWait(endpoint string, duration float64)
	RecordCircuitRejection(endpoint string)
}

// CacheMetricsRecorder defines the interface for recording result cache activity
type CacheMetricsRecorder interface {
	RecordCacheHit(endpoint string)
	RecordCacheMiss(endpoint string)
	RecordCacheEviction()
	RecordCacheSize(entries int)
}

// QueryMetricsRecorder defines the interface for recording query run outcomes
type QueryMetricsRecorder interface {
	RecordQueryStarted(mode string)
	RecordQueryFinished(mode string, state string, duration float64, results int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalProviderCollector sets the global provider metrics collector
func SetGlobalProviderCollector(collector ProviderMetricsRecorder) {
	globalProviderCollector = collector
}

// RecordProviderRequest records a provider round trip globally
func RecordProviderRequest(endpoint string, statusCode int, duration float64) {
	if globalProviderCollector != nil {
		globalProviderCollector.RecordProviderRequest(endpoint, statusCode, duration)
	}
}

// RecordRateLimitWait records time spent waiting for the rate limiter globally
func RecordRateLimitWait(endpoint string, duration float64) {
	if globalProviderCollector != nil {
		globalProviderCollector.RecordRateLimitWait(endpoint, duration)
	}
}

// RecordCircuitRejection records a request refused by the open circuit breaker globally
func RecordCircuitRejection(endpoint string) {
	if globalProviderCollector != nil {
		globalProviderCollector.RecordCircuitRejection(endpoint)
	}
}

// SetGlobalCacheCollector sets the global cache metrics collector
func SetGlobalCacheCollector(collector CacheMetricsRecorder) {
	globalCacheCollector = collector
}

// RecordCacheHit records a cache hit globally
func RecordCacheHit(endpoint string) {
	if globalCacheCollector != nil {
		globalCacheCollector.RecordCacheHit(endpoint)
	}
}

// RecordCacheMiss records a cache miss globally
func RecordCacheMiss(endpoint string) {
	if globalCacheCollector != nil {
		globalCacheCollector.RecordCacheMiss(endpoint)
	}
}

// RecordCacheEviction records an LRU eviction globally
func RecordCacheEviction() {
	if globalCacheCollector != nil {
		globalCacheCollector.RecordCacheEviction()
	}
}

// RecordCacheSize records the current number of cached entries globally
func RecordCacheSize(entries int) {
	if globalCacheCollector != nil {
		globalCacheCollector.RecordCacheSize(entries)
	}
}

// SetGlobalQueryCollector sets the global query metrics collector
func SetGlobalQueryCollector(collector QueryMetricsRecorder) {
	globalQueryCollector = collector
}

// RecordQueryStarted records a submitted query globally
func RecordQueryStarted(mode string) {
	if globalQueryCollector != nil {
		globalQueryCollector.RecordQueryStarted(mode)
	}
}

// RecordQueryFinished records a terminal query outcome globally
func RecordQueryFinished(mode string, state string, duration float64, results int) {
	if globalQueryCollector != nil {
		globalQueryCollector.RecordQueryFinished(mode, state, duration, results)
	}
}

// register registers collectors with the global registry, skipping when disabled
func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}

	return nil
}
