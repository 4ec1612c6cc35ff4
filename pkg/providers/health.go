package providers

import (
	"log/slog"
	"sync"
	"time"
)

// unhealthyAfter is the number of consecutive transport failures after which
// a provider is reported unhealthy.
const unhealthyAfter = 3

// ProviderHealth is a snapshot of a provider's recent call outcomes.
// Any answer from the provider, including 4xx and 5xx, counts as reachable;
// only transport failures count against health.
type ProviderHealth struct {
	// IsHealthy is false after unhealthyAfter consecutive transport failures.
	IsHealthy bool `json:"healthy"`

	// ConsecutiveFailures is the current run of transport failures.
	ConsecutiveFailures int `json:"consecutive_failures"`

	// TotalRequests is the number of calls attempted.
	TotalRequests int64 `json:"total_requests"`

	// FailedRequests is the number of calls that ended in a transport failure.
	FailedRequests int64 `json:"failed_requests"`

	// LastStatusCode is the status of the most recent answer.
	LastStatusCode int `json:"last_status_code,omitempty"`

	// LastError is the most recent transport failure message.
	LastError string `json:"last_error,omitempty"`

	// LastSuccessfulRequest is when the provider last answered.
	LastSuccessfulRequest time.Time `json:"last_successful_request,omitzero"`

	// LastCheck is when the most recent call finished.
	LastCheck time.Time `json:"last_check,omitzero"`
}

// healthTracker accumulates ProviderHealth under a mutex.
type healthTracker struct {
	mu     sync.RWMutex
	health ProviderHealth
}

func newHealthTracker() *healthTracker {
	return &healthTracker{health: ProviderHealth{IsHealthy: true}}
}

// recordResponse records a call that got an answer.
func (h *healthTracker) recordResponse(statusCode int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	if !h.health.IsHealthy {
		slog.Info("provider marked healthy",
			"previous_failures", h.health.ConsecutiveFailures,
		)
	}
	h.health.TotalRequests++
	h.health.IsHealthy = true
	h.health.ConsecutiveFailures = 0
	h.health.LastStatusCode = statusCode
	h.health.LastSuccessfulRequest = now
	h.health.LastCheck = now
}

// recordFailure records a call that got no answer.
func (h *healthTracker) recordFailure(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.health.TotalRequests++
	h.health.FailedRequests++
	h.health.ConsecutiveFailures++
	h.health.LastError = err.Error()
	h.health.LastCheck = time.Now()

	if h.health.IsHealthy && h.health.ConsecutiveFailures >= unhealthyAfter {
		h.health.IsHealthy = false
		slog.Warn("provider marked unhealthy",
			"consecutive_failures", h.health.ConsecutiveFailures,
			"error", err,
		)
	}
}

func (h *healthTracker) snapshot() ProviderHealth {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.health
}
