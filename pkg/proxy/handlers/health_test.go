package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pidginpal-hq/relay/pkg/config"
	"pidginpal-hq/relay/pkg/providers"
	"pidginpal-hq/relay/pkg/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stubReporter struct {
	name   string
	health providers.ProviderHealth
}

func (s stubReporter) Name() string                     { return s.name }
func (s stubReporter) Health() providers.ProviderHealth { return s.health }

func TestProviderHealthHandler(t *testing.T) {
	tests := []struct {
		name        string
		health      providers.ProviderHealth
		wantHealthy bool
		wantGauge   string
	}{
		{
			name:        "healthy",
			health:      providers.ProviderHealth{IsHealthy: true, TotalRequests: 4},
			wantHealthy: true,
			wantGauge:   "1",
		},
		{
			name: "unhealthy",
			health: providers.ProviderHealth{
				IsHealthy:           false,
				ConsecutiveFailures: 3,
				LastError:           "connection refused",
			},
			wantHealthy: false,
			wantGauge:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := prometheus.NewRegistry()
			collector := metrics.NewCollector(&config.MetricsConfig{Namespace: "test"}, registry)
			h := NewProviderHealthHandler(stubReporter{name: "openai", health: tt.health}, collector)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/provider", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var body struct {
				Providers map[string]providers.ProviderHealth `json:"providers"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			got, ok := body.Providers["openai"]
			if !ok {
				t.Fatalf("providers = %v, want openai entry", body.Providers)
			}
			if got.IsHealthy != tt.wantHealthy {
				t.Errorf("healthy = %v, want %v", got.IsHealthy, tt.wantHealthy)
			}
			if got.LastError != tt.health.LastError {
				t.Errorf("last_error = %q, want %q", got.LastError, tt.health.LastError)
			}

			expected := `
# HELP test_provider_health Provider health status (1=healthy, 0=unhealthy)
# TYPE test_provider_health gauge
test_provider_health{provider="openai"} ` + tt.wantGauge + `
`
			if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_provider_health"); err != nil {
				t.Errorf("unexpected metrics: %v", err)
			}
		})
	}
}

func TestProviderHealthHandler_MethodNotAllowed(t *testing.T) {
	h := NewProviderHealthHandler(stubReporter{name: "openai"}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health/provider", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
