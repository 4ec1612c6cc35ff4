package metrics

import (
	"time"

	"pidginpal-hq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ProviderMetrics tracks calls to the completion provider.
//
// Metrics:
//   - pidginpal_provider_requests_total: answered calls by status code
//   - pidginpal_provider_latency_seconds: provider latency
//   - pidginpal_provider_errors_total: unanswered calls by error type
//   - pidginpal_provider_fallbacks_total: answers replaced by the fallback reply
//   - pidginpal_provider_health: 1=healthy, 0=unhealthy
type ProviderMetrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	errors    *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	health    *prometheus.GaugeVec
}

// NewProviderMetrics creates provider metrics and registers them with registry.
func NewProviderMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProviderMetrics {
	factory := promauto.With(registry)
	byProvider := []string{"provider"}
	byStatus := []string{"provider", "status_code"}

	return &ProviderMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "provider_requests_total",
			Help:      "Total number of provider calls that got an answer, by status code",
		}, byStatus),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "provider_latency_seconds",
			Help:      "Provider call latency in seconds",
			Buckets:   cfg.RequestDurationBuckets,
		}, byProvider),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "provider_errors_total",
			Help:      "Total number of provider calls that got no answer, by error type",
		}, []string{"provider", "error_type"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "provider_fallbacks_total",
			Help:      "Total number of provider answers replaced by the fallback reply",
		}, byStatus),
		health: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "provider_health",
			Help:      "Provider health status (1=healthy, 0=unhealthy)",
		}, byProvider),
	}
}

// RecordResponse records an answered provider call.
func (pm *ProviderMetrics) RecordResponse(provider, statusCode string, latency time.Duration) {
	pm.requests.WithLabelValues(provider, statusCode).Inc()
	pm.latency.WithLabelValues(provider).Observe(latency.Seconds())
}

// RecordError records an unanswered provider call.
//
// Error types:
//   - "timeout": the configured provider timeout elapsed
//   - "transport": connection, TLS, or read failure
func (pm *ProviderMetrics) RecordError(provider, errorType string) {
	pm.errors.WithLabelValues(provider, errorType).Inc()
}

// RecordFallback records a 402 or 429 answer that was replaced.
func (pm *ProviderMetrics) RecordFallback(provider, statusCode string) {
	pm.fallbacks.WithLabelValues(provider, statusCode).Inc()
}

// UpdateHealth sets the provider health gauge.
func (pm *ProviderMetrics) UpdateHealth(provider string, healthy bool) {
	gauge := pm.health.WithLabelValues(provider)
	if healthy {
		gauge.Set(1)
		return
	}
	gauge.Set(0)
}
