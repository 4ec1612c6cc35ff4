package health

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"
)

// Overall and per-check statuses.
const (
	StatusOK        = "ok"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc is a function that performs a health check for a component.
// It returns nil if the component is healthy, or an error describing the problem.
type CheckFunc func(ctx context.Context) error

// CheckResult represents the result of a single health check.
type CheckResult struct {
	// Status is StatusOK or StatusUnhealthy
	Status string `json:"status"`

	// Message describes the problem when Status is StatusUnhealthy
	Message string `json:"message,omitempty"`

	// Duration is how long the check took
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// HealthStatus represents the overall health status of the relay.
type HealthStatus struct {
	// Status is StatusOK for liveness, StatusReady or StatusNotReady for
	// readiness
	Status string `json:"status"`

	// Reason is the message of the first failing check, by name
	Reason string `json:"reason,omitempty"`

	// Checks contains the status of individual components (for readiness)
	Checks map[string]CheckResult `json:"checks,omitempty"`

	// Timestamp is when the health check was performed
	Timestamp time.Time `json:"timestamp"`
}

// Checker runs readiness checks for the relay's components.
type Checker struct {
	mu           sync.RWMutex
	checks       map[string]CheckFunc
	checkTimeout time.Duration
}

// ErrCheckTimeout is reported when a health check does not finish in time.
var ErrCheckTimeout = errors.New("health check timeout")

// New returns a checker that gives each check checkTimeout to finish,
// or 5 seconds when checkTimeout is zero.
func New(checkTimeout time.Duration) *Checker {
	if checkTimeout <= 0 {
		checkTimeout = 5 * time.Second
	}
	return &Checker{checks: map[string]CheckFunc{}, checkTimeout: checkTimeout}
}

// RegisterCheck adds check under name, replacing any check already there.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	c.checks[name] = check
	c.mu.Unlock()
}

// ListChecks returns the registered check names in sorted order.
func (c *Checker) ListChecks() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.checks))
}

// CheckLiveness reports that the process is up. It runs no checks.
func (c *Checker) CheckLiveness(ctx context.Context) HealthStatus {
	return HealthStatus{Status: StatusOK, Timestamp: time.Now()}
}

type namedResult struct {
	name   string
	result CheckResult
}

// CheckReadiness runs every registered check concurrently. The relay is
// ready only when all of them pass; Reason carries the message of the
// first failing check in name order.
func (c *Checker) CheckReadiness(ctx context.Context) HealthStatus {
	c.mu.RLock()
	checks := maps.Clone(c.checks)
	c.mu.RUnlock()

	done := make(chan namedResult, len(checks))
	for name, check := range checks {
		go func() {
			done <- namedResult{name: name, result: c.runCheck(ctx, check)}
		}()
	}

	results := make(map[string]CheckResult, len(checks))
	for range checks {
		r := <-done
		results[r.name] = r.result
	}

	status := HealthStatus{Status: StatusReady, Checks: results, Timestamp: time.Now()}
	for _, name := range slices.Sorted(maps.Keys(results)) {
		if r := results[name]; r.Status != StatusOK {
			status.Status = StatusNotReady
			status.Reason = r.Message
			break
		}
	}
	return status
}

// runCheck gives check its own deadline. A check that ignores its context
// is abandoned once the deadline passes.
func (c *Checker) runCheck(ctx context.Context, check CheckFunc) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	start := time.Now()
	errc := make(chan error, 1)
	go func() { errc <- check(ctx) }()

	var err error
	select {
	case err = <-errc:
	case <-ctx.Done():
		err = ErrCheckTimeout
	}

	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Message: err.Error(), Duration: time.Since(start)}
	}
	return CheckResult{Status: StatusOK, Duration: time.Since(start)}
}

// CredentialCheck fails while no provider credential is configured.
func CredentialCheck(hasCredential func() bool) CheckFunc {
	return func(context.Context) error {
		if !hasCredential() {
			return errors.New("provider credential is not configured")
		}
		return nil
	}
}
