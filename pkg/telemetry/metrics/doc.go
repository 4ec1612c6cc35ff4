// Package metrics provides Prometheus metrics for the relay.
//
// # Metrics Categories
//
//   - Relay Metrics: chat requests by outcome, duration, and in-flight count
//   - Provider Metrics: provider status codes, latency, transport errors,
//     fallbacks, and health
//
// Outcomes are the five ways a chat request can end: invalid_payload,
// missing_credential, transport_error, fallback, and passthrough. Label
// values come from fixed sets (outcomes, status codes, provider name), so
// cardinality is bounded without a limiter.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordRelay("passthrough", 200, 850*time.Millisecond)
//	collector.RecordProviderResponse("openai", 200, 800*time.Millisecond)
//	collector.RecordFallback("openai", 429)
//
// # Prometheus Endpoint
//
//	# HELP pidginpal_requests_total Total number of chat requests handled
//	# TYPE pidginpal_requests_total counter
//	pidginpal_requests_total{outcome="passthrough",status_code="200"} 1234
package metrics
