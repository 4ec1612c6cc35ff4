package proxy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"pidginpal-hq/relay/pkg/config"
	"pidginpal-hq/relay/pkg/providers"
	"pidginpal-hq/relay/pkg/proxy/types"
	"pidginpal-hq/relay/pkg/telemetry/logging"
	"pidginpal-hq/relay/pkg/telemetry/metrics"
	"pidginpal-hq/relay/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel"
)

// Relay outcomes, used as metric labels and span attributes.
const (
	OutcomeInvalidPayload    = "invalid_payload"
	OutcomeMissingCredential = "missing_credential"
	OutcomeTransportError    = "transport_error"
	OutcomeFallback          = "fallback"
	OutcomePassthrough       = "passthrough"
	OutcomeInternalError     = "internal_error"
)

// RelayConfig is the fixed configuration of a Relay. It is copied at
// construction and never changes afterwards.
type RelayConfig struct {
	// ProviderName identifies the provider in logs, metrics, and traces.
	ProviderName string

	// APIKey is the provider credential. Empty means every request fails
	// with MissingCredentialError.
	APIKey string

	// Model is the model identifier sent with every request.
	Model string

	// SystemPrompt is the persona message placed before the caller's message.
	SystemPrompt string

	// FallbackMessage is the assistant reply served on 402 and 429.
	FallbackMessage string

	// MaxTokens, Temperature, and TopP are attached to every request when
	// set.
	MaxTokens   *int
	Temperature *float64
	TopP        *float64

	// LogPayloads logs the outbound payload and the raw provider response.
	LogPayloads bool
}

// RelayConfigFrom builds a RelayConfig from a loaded configuration.
func RelayConfigFrom(cfg *config.Config) RelayConfig {
	return RelayConfig{
		ProviderName:    cfg.Provider.Name,
		APIKey:          cfg.Provider.APIKey,
		Model:           cfg.Provider.Model,
		SystemPrompt:    cfg.Persona.SystemPrompt,
		FallbackMessage: cfg.Persona.FallbackMessage,
		MaxTokens:       cfg.Sampling.MaxTokens,
		Temperature:     cfg.Sampling.Temperature,
		TopP:            cfg.Sampling.TopP,
		LogPayloads:     cfg.Telemetry.Logging.LogPayloads == nil || *cfg.Telemetry.Logging.LogPayloads,
	}
}

// Result is the answer to a relayed chat message.
type Result struct {
	// StatusCode is the status to send to the client.
	StatusCode int

	// Body is the provider's raw body, set for passthrough results.
	Body []byte

	// Fallback is set instead of Body when the provider was out of quota or
	// rate limited.
	Fallback *types.ChatCompletion

	// Outcome is OutcomeFallback or OutcomePassthrough.
	Outcome string

	// ProviderStatus is the status the provider answered with.
	ProviderStatus int

	// Latency is the provider call latency.
	Latency time.Duration
}

// Relay turns a caller's message into a single provider call and classifies
// the answer. It holds no per-request state and is safe for concurrent use.
type Relay struct {
	config   RelayConfig
	provider providers.Provider
	metrics  *metrics.Collector
	now      func() time.Time
}

// Option configures a Relay.
type Option func(*Relay)

// WithMetrics records provider and fallback metrics on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(r *Relay) {
		r.metrics = collector
	}
}

// WithClock overrides the clock used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Relay) {
		r.now = now
	}
}

// NewRelay creates a Relay. The sampling values in cfg are copied, so later
// changes to the caller's pointers have no effect.
func NewRelay(cfg RelayConfig, provider providers.Provider, opts ...Option) (*Relay, error) {
	if provider == nil {
		return nil, errors.New("relay: provider is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("relay: model is required")
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = config.DefaultProviderName
	}
	if cfg.FallbackMessage == "" {
		cfg.FallbackMessage = config.DefaultFallbackMessage
	}

	cfg.MaxTokens = copyPtr(cfg.MaxTokens)
	cfg.Temperature = copyPtr(cfg.Temperature)
	cfg.TopP = copyPtr(cfg.TopP)

	r := &Relay{
		config:   cfg,
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// HasCredential reports whether a provider credential is configured.
func (r *Relay) HasCredential() bool {
	return r.config.APIKey != ""
}

// ProviderName returns the configured provider name.
func (r *Relay) ProviderName() string {
	return r.config.ProviderName
}

// BuildRequest returns a new completion request holding the persona message
// followed by content, unchanged.
func (r *Relay) BuildRequest(content string) *providers.CompletionRequest {
	now := r.now()
	return &providers.CompletionRequest{
		Model: r.config.Model,
		Messages: []providers.ChatMessage{
			{Role: providers.RoleSystem, Content: r.config.SystemPrompt, Timestamp: now},
			{Role: providers.RoleUser, Content: content, Timestamp: now},
		},
		MaxTokens:   copyPtr(r.config.MaxTokens),
		Temperature: copyPtr(r.config.Temperature),
		TopP:        copyPtr(r.config.TopP),
		Stream:      false,
	}
}

// Handle relays content to the provider once.
//
// It returns a *MissingCredentialError without calling the provider when no
// credential is configured, and a *TransportError when the provider gave no
// answer. A provider answer of 402 or 429 becomes a 200 fallback result; any
// other answer is passed through with its status and body.
func (r *Relay) Handle(ctx context.Context, content string) (*Result, error) {
	ctx, span := otel.Tracer(tracing.InstrumentationName).Start(ctx, "relay.handle")
	defer span.End()

	name := r.config.ProviderName
	tracing.SetRelayAttributes(span, logging.GetRequestID(ctx), name, r.config.Model, len(content))

	if !r.HasCredential() {
		err := &MissingCredentialError{Provider: name}
		slog.ErrorContext(ctx, "provider credential is not configured", "provider", name)
		tracing.SetOutcomeAttributes(span, OutcomeMissingCredential, 0)
		tracing.SetStatus(span, err)
		return nil, err
	}

	req := r.BuildRequest(content)
	if r.config.LogPayloads {
		r.logPayload(ctx, req)
	}

	resp, err := r.provider.Send(ctx, r.config.APIKey, req)
	if err == nil && resp == nil {
		err = &providers.TransportError{Provider: name, Cause: errors.New("provider returned no response")}
	}
	if err != nil {
		r.metrics.RecordProviderError(name, providerErrorType(err))
		slog.ErrorContext(ctx, "provider request failed",
			"provider", name,
			"error", err,
		)
		relayErr := &TransportError{Provider: name, Cause: err}
		tracing.SetOutcomeAttributes(span, OutcomeTransportError, 0)
		tracing.SetStatus(span, relayErr)
		return nil, relayErr
	}

	r.metrics.RecordProviderResponse(name, resp.StatusCode, resp.Latency)
	if r.config.LogPayloads {
		slog.InfoContext(ctx, "provider response",
			"provider", name,
			"status", resp.StatusCode,
			"body", string(resp.Body),
		)
	}

	if IsDegraded(resp.StatusCode) {
		r.metrics.RecordFallback(name, resp.StatusCode)
		slog.WarnContext(ctx, "provider out of quota or rate limited, serving fallback",
			"provider", name,
			"status", resp.StatusCode,
		)
		tracing.SetOutcomeAttributes(span, OutcomeFallback, resp.StatusCode)
		return &Result{
			StatusCode:     http.StatusOK,
			Fallback:       types.NewFallbackResponse(r.config.FallbackMessage),
			Outcome:        OutcomeFallback,
			ProviderStatus: resp.StatusCode,
			Latency:        resp.Latency,
		}, nil
	}

	if resp.StatusCode >= 400 {
		slog.WarnContext(ctx, "provider returned an error status, passing it through",
			"provider", name,
			"status", resp.StatusCode,
		)
	}
	tracing.SetOutcomeAttributes(span, OutcomePassthrough, resp.StatusCode)
	return &Result{
		StatusCode:     resp.StatusCode,
		Body:           resp.Body,
		Outcome:        OutcomePassthrough,
		ProviderStatus: resp.StatusCode,
		Latency:        resp.Latency,
	}, nil
}

func (r *Relay) logPayload(ctx context.Context, req *providers.CompletionRequest) {
	body, err := req.MarshalBody()
	if err != nil {
		slog.WarnContext(ctx, "failed to encode request payload for logging", "error", err)
		return
	}
	slog.InfoContext(ctx, "request payload",
		"provider", r.config.ProviderName,
		"payload", string(body),
	)
}

// IsDegraded reports whether a provider status means the provider is out of
// quota (402) or rate limiting (429).
func IsDegraded(statusCode int) bool {
	return statusCode == http.StatusPaymentRequired || statusCode == http.StatusTooManyRequests
}

func providerErrorType(err error) string {
	var timeoutErr *providers.TimeoutError
	if errors.As(err, &timeoutErr) {
		return "timeout"
	}
	return "transport"
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

