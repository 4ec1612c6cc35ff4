package metrics

import (
	"time"

	"pidginpal-hq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RelayMetrics tracks inbound chat requests.
//
// Metrics:
//   - pidginpal_requests_total: handled requests by outcome and status code
//   - pidginpal_request_duration_seconds: end-to-end duration by outcome
//   - pidginpal_requests_in_flight: requests currently being relayed
type RelayMetrics struct {
	// Total request count
	requestsTotal *prometheus.CounterVec

	// Request duration histogram
	requestDuration *prometheus.HistogramVec

	// Requests waiting on the provider or being written
	inFlight prometheus.Gauge
}

// NewRelayMetrics creates and registers relay metrics with the provided registry.
func NewRelayMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RelayMetrics {
	rm := &RelayMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of chat requests handled",
			},
			[]string{"outcome", "status_code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of chat requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"outcome"},
		),

		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_in_flight",
				Help:      "Number of chat requests currently being handled",
			},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.inFlight,
	)

	return rm
}

// Record records a completed chat request.
func (rm *RelayMetrics) Record(outcome, statusCode string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(outcome, statusCode).Inc()
	rm.requestDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}
