package handlers

import (
	"log/slog"
	"net/http"

	"pidginpal-hq/relay/pkg/proxy"
	"pidginpal-hq/relay/pkg/telemetry/metrics"
)

// ProviderHealthHandler reports the provider's recent call outcomes.
type ProviderHealthHandler struct {
	provider HealthReporter
	metrics  *metrics.Collector
}

// NewProviderHealthHandler creates a provider health handler. collector may
// be nil; when set, the provider health gauge is refreshed on every call.
func NewProviderHealthHandler(provider HealthReporter, collector *metrics.Collector) *ProviderHealthHandler {
	return &ProviderHealthHandler{provider: provider, metrics: collector}
}

// ServeHTTP implements http.Handler.
//
// Example response:
//
//	{
//	  "providers": {
//	    "openai": {"healthy": true, "consecutive_failures": 0, "total_requests": 12, ...}
//	  }
//	}
func (h *ProviderHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := h.provider.Name()
	health := h.provider.Health()
	h.metrics.UpdateProviderHealth(name, health.IsHealthy)

	response := map[string]any{
		"providers": map[string]any{
			name: health,
		},
	}

	if err := proxy.WriteJSONResponse(w, http.StatusOK, response); err != nil {
		slog.ErrorContext(r.Context(), "failed to write provider health", "error", err)
	}
}
