package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pidginpal-hq/relay/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:                config.BoolPtr(true),
		Namespace:              "test",
		RequestDurationBuckets: []float64{0.1, 0.5, 1.0, 5.0},
	}
}

func TestNewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{}
	collector := NewCollector(cfg, prometheus.NewRegistry())

	if collector.config.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want %q", collector.config.Namespace, config.DefaultMetricsNamespace)
	}
	if len(collector.config.RequestDurationBuckets) != len(config.DefaultRequestDurationBuckets) {
		t.Errorf("RequestDurationBuckets = %v, want defaults", collector.config.RequestDurationBuckets)
	}
	if cfg.Namespace != "" {
		t.Error("NewCollector should not modify the caller's config")
	}
}

func TestCollector_RecordRelay(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	tests := []struct {
		outcome    string
		statusCode int
		duration   time.Duration
	}{
		{"invalid_payload", 400, time.Millisecond},
		{"missing_credential", 500, time.Millisecond},
		{"transport_error", 500, 30 * time.Second},
		{"fallback", 200, 400 * time.Millisecond},
		{"passthrough", 200, 900 * time.Millisecond},
		{"passthrough", 500, 200 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			collector.RecordRelay(tt.outcome, tt.statusCode, tt.duration)
		})
	}

	if got := testutil.ToFloat64(collector.relayMetrics.requestsTotal.WithLabelValues("passthrough", "200")); got != 1 {
		t.Errorf("passthrough/200 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.relayMetrics.requestsTotal.WithLabelValues("passthrough", "500")); got != 1 {
		t.Errorf("passthrough/500 = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(collector.relayMetrics.requestsTotal); got != 6 {
		t.Errorf("requests_total series = %d, want 6", got)
	}
	if got := testutil.CollectAndCount(collector.relayMetrics.requestDuration); got != 5 {
		t.Errorf("request_duration_seconds series = %d, want 5", got)
	}
}

func TestCollector_InFlight(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.IncInFlight()
	collector.IncInFlight()
	collector.DecInFlight()

	if got := testutil.ToFloat64(collector.relayMetrics.inFlight); got != 1 {
		t.Errorf("requests_in_flight = %v, want 1", got)
	}
}

func TestCollector_ProviderMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	t.Run("record response", func(t *testing.T) {
		collector.RecordProviderResponse("openai", 200, 800*time.Millisecond)
		collector.RecordProviderResponse("openai", 429, 100*time.Millisecond)

		if got := testutil.ToFloat64(collector.providerMetrics.requests.WithLabelValues("openai", "429")); got != 1 {
			t.Errorf("provider_requests_total{429} = %v, want 1", got)
		}
	})

	t.Run("record error", func(t *testing.T) {
		collector.RecordProviderError("openai", "timeout")

		if got := testutil.ToFloat64(collector.providerMetrics.errors.WithLabelValues("openai", "timeout")); got != 1 {
			t.Errorf("provider_errors_total{timeout} = %v, want 1", got)
		}
	})

	t.Run("record fallback", func(t *testing.T) {
		collector.RecordFallback("openai", 402)

		if got := testutil.ToFloat64(collector.providerMetrics.fallbacks.WithLabelValues("openai", "402")); got != 1 {
			t.Errorf("provider_fallbacks_total{402} = %v, want 1", got)
		}
	})

	t.Run("update health", func(t *testing.T) {
		collector.UpdateProviderHealth("openai", true)
		if got := testutil.ToFloat64(collector.providerMetrics.health.WithLabelValues("openai")); got != 1 {
			t.Errorf("provider_health = %v, want 1", got)
		}

		collector.UpdateProviderHealth("openai", false)
		if got := testutil.ToFloat64(collector.providerMetrics.health.WithLabelValues("openai")); got != 0 {
			t.Errorf("provider_health = %v, want 0", got)
		}
	})
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = config.BoolPtr(false)
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordRelay("passthrough", 200, time.Second)
	collector.RecordProviderResponse("openai", 200, time.Second)
	collector.RecordFallback("openai", 429)

	if got := testutil.CollectAndCount(collector.relayMetrics.requestsTotal); got != 0 {
		t.Errorf("disabled collector recorded %d series", got)
	}
}

func TestCollector_Nil(t *testing.T) {
	var collector *Collector

	// These should not panic
	collector.RecordRelay("passthrough", 200, time.Second)
	collector.IncInFlight()
	collector.DecInFlight()
	collector.RecordProviderResponse("openai", 200, time.Second)
	collector.RecordProviderError("openai", "transport")
	collector.RecordFallback("openai", 429)
	collector.UpdateProviderHealth("openai", true)
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordFallback("openai", 429)

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`test_provider_fallbacks_total{provider="openai",status_code="429"} 1`,
		"go_goroutines",
		"promhttp_metric_handler_requests_total",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestCollector_Handler_Nil(t *testing.T) {
	var collector *Collector

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
