package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pidginpal-hq/relay/pkg/proxy"
	"pidginpal-hq/relay/pkg/proxy/types"
	"pidginpal-hq/relay/pkg/telemetry/metrics"
)

// ChatHandler serves the chat endpoint.
type ChatHandler struct {
	relay        ChatRelay
	maxBodyBytes int64
	metrics      *metrics.Collector
}

// NewChatHandler creates a chat handler. collector may be nil.
func NewChatHandler(relay ChatRelay, maxBodyBytes int64, collector *metrics.Collector) *ChatHandler {
	return &ChatHandler{
		relay:        relay,
		maxBodyBytes: maxBodyBytes,
		metrics:      collector,
	}
}

// ServeHTTP implements http.Handler.
//
// OPTIONS answers 200 with an empty body. POST relays messages[0].content.
// Every other method gets 405.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		slog.WarnContext(ctx, "method not allowed on chat endpoint", "method", r.Method)
		w.Header().Set("Allow", "POST, OPTIONS")
		errResp := types.NewErrorResponse(types.ErrorMethodNotAllowed,
			fmt.Sprintf("Method %s not allowed. Use POST instead.", r.Method))
		if err := proxy.WriteErrorResponse(w, http.StatusMethodNotAllowed, errResp); err != nil {
			slog.ErrorContext(ctx, "failed to write error response", "error", err)
		}
		return
	}

	startTime := time.Now()
	h.metrics.IncInFlight()
	defer h.metrics.DecInFlight()

	content, err := proxy.ParseChatRequest(r, h.maxBodyBytes)
	if err != nil {
		slog.WarnContext(ctx, "rejected chat request", "error", err)
		h.writeError(w, r, err, startTime)
		return
	}

	slog.InfoContext(ctx, "relaying chat request", "content_bytes", len(content))

	result, err := h.relay.Handle(ctx, content)
	if err != nil {
		h.writeError(w, r, err, startTime)
		return
	}

	if err := proxy.WriteResult(w, result); err != nil {
		slog.ErrorContext(ctx, "failed to write response", "error", err)
	}

	duration := time.Since(startTime)
	h.metrics.RecordRelay(result.Outcome, result.StatusCode, duration)
	slog.InfoContext(ctx, "chat request completed",
		"outcome", result.Outcome,
		"status", result.StatusCode,
		"provider_status", result.ProviderStatus,
		"provider_latency_ms", result.Latency.Milliseconds(),
		"total_latency_ms", duration.Milliseconds(),
	)
}

// writeError writes the error body for err and records the outcome.
func (h *ChatHandler) writeError(w http.ResponseWriter, r *http.Request, err error, startTime time.Time) {
	status, errResp := proxy.HandleError(err)
	if writeErr := proxy.WriteErrorResponse(w, status, errResp); writeErr != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", "error", writeErr)
	}
	h.metrics.RecordRelay(proxy.OutcomeOf(err), status, time.Since(startTime))
}
