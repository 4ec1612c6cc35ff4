package metrics

import (
	"strconv"
	"time"

	"pidginpal-hq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns the relay's Prometheus registry and every metric in it.
//
// A nil *Collector is valid and records nothing, so callers that run without
// metrics (the ask command, most tests) can pass nil instead of branching.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	// Relay metrics, one observation per inbound chat request
	relayMetrics *RelayMetrics

	// Provider metrics, one observation per outbound call
	providerMetrics *ProviderMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil a new one is created and the Go runtime and process
// collectors are added to it.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	c := &Collector{config: *cfg}

	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	c.registry = registry

	if c.config.Namespace == "" {
		c.config.Namespace = config.DefaultMetricsNamespace
	}
	if len(c.config.RequestDurationBuckets) == 0 {
		c.config.RequestDurationBuckets = append([]float64(nil), config.DefaultRequestDurationBuckets...)
	}

	c.relayMetrics = NewRelayMetrics(&c.config, registry)
	c.providerMetrics = NewProviderMetrics(&c.config, registry)

	return c
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.IsEnabled()
}

// RecordRelay records one handled chat request.
//
// Parameters:
//   - outcome: how the request ended ("invalid_payload", "missing_credential",
//     "transport_error", "fallback", "passthrough")
//   - statusCode: the status written to the caller
//   - duration: time from receipt to response
func (c *Collector) RecordRelay(outcome string, statusCode int, duration time.Duration) {
	if !c.enabled() {
		return
	}

	c.relayMetrics.Record(outcome, strconv.Itoa(statusCode), duration)
}

// IncInFlight marks a chat request as started.
func (c *Collector) IncInFlight() {
	if !c.enabled() {
		return
	}
	c.relayMetrics.inFlight.Inc()
}

// DecInFlight marks a chat request as finished.
func (c *Collector) DecInFlight() {
	if !c.enabled() {
		return
	}
	c.relayMetrics.inFlight.Dec()
}

// RecordProviderResponse records an outbound call that got an answer.
//
// Parameters:
//   - provider: provider name (e.g., "openai")
//   - statusCode: the provider's HTTP status
//   - latency: time spent waiting for the provider
func (c *Collector) RecordProviderResponse(provider string, statusCode int, latency time.Duration) {
	if !c.enabled() {
		return
	}

	c.providerMetrics.RecordResponse(provider, strconv.Itoa(statusCode), latency)
}

// RecordProviderError records an outbound call that got no answer.
//
// Parameters:
//   - provider: provider name
//   - errorType: "timeout" or "transport"
func (c *Collector) RecordProviderError(provider, errorType string) {
	if !c.enabled() {
		return
	}

	c.providerMetrics.RecordError(provider, errorType)
}

// RecordFallback records a provider status that was replaced by the fallback
// reply.
func (c *Collector) RecordFallback(provider string, statusCode int) {
	if !c.enabled() {
		return
	}

	c.providerMetrics.RecordFallback(provider, strconv.Itoa(statusCode))
}

// UpdateProviderHealth sets the provider health gauge (1=healthy, 0=unhealthy).
func (c *Collector) UpdateProviderHealth(provider string, healthy bool) {
	if !c.enabled() {
		return
	}

	c.providerMetrics.UpdateHealth(provider, healthy)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
