package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pidginpal-hq/relay/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxResponseBytes caps how much of a provider response body is read.
const DefaultMaxResponseBytes = 10 * 1024 * 1024 // 10MB

// ChatCompletionsPath is appended to the base URL to form the endpoint.
const ChatCompletionsPath = "/chat/completions"

// ProviderConfig contains configuration for an HTTP provider.
type ProviderConfig struct {
	// Name identifies the provider in logs, traces, and errors.
	Name string

	// BaseURL is the API base (e.g., "https://api.openai.com/v1").
	BaseURL string

	// Timeout bounds the whole call including reading the response body.
	Timeout time.Duration

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum number of idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long idle connections are kept.
	IdleConnTimeout time.Duration

	// MaxResponseBytes caps the response body size. Zero means
	// DefaultMaxResponseBytes.
	MaxResponseBytes int64
}

// HTTPProvider sends chat completion requests to an OpenAI-compatible
// endpoint over a pooled HTTP client. It makes exactly one attempt per call.
type HTTPProvider struct {
	// config contains the provider configuration
	config ProviderConfig

	// endpoint is BaseURL + ChatCompletionsPath
	endpoint string

	// client is the HTTP client with connection pooling
	client *http.Client

	// health tracks call outcomes
	health *healthTracker
}

// NewHTTPProvider creates a provider with a pooled HTTP client.
// It returns a *ConfigError if the base URL or timeout is unusable.
func NewHTTPProvider(config ProviderConfig) (*HTTPProvider, error) {
	u, err := url.Parse(config.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &ConfigError{
			Provider: config.Name,
			Field:    "base_url",
			Message:  fmt.Sprintf("must be an absolute http(s) URL, got %q", config.BaseURL),
		}
	}
	if config.Timeout <= 0 {
		return nil, &ConfigError{
			Provider: config.Name,
			Field:    "timeout",
			Message:  "must be positive",
		}
	}
	if config.MaxResponseBytes <= 0 {
		config.MaxResponseBytes = DefaultMaxResponseBytes
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPProvider{
		config:   config,
		endpoint: strings.TrimRight(config.BaseURL, "/") + ChatCompletionsPath,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		health: newHealthTracker(),
	}, nil
}

// Name returns the provider's configured name.
func (p *HTTPProvider) Name() string {
	return p.config.Name
}

// Endpoint returns the full chat completions URL.
func (p *HTTPProvider) Endpoint() string {
	return p.endpoint
}

// Send posts req to the chat completions endpoint with a bearer credential
// and returns the provider's status and raw body. See Provider for the
// error contract.
func (p *HTTPProvider) Send(ctx context.Context, apiKey string, req *CompletionRequest) (*Response, error) {
	body, err := req.MarshalBody()
	if err != nil {
		return nil, &ValidationError{Field: "request", Message: err.Error()}
	}

	ctx, span := otel.Tracer(tracing.InstrumentationName).Start(ctx, "provider.send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrProvider, p.config.Name),
			attribute.String(tracing.AttrModel, req.Model),
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", p.endpoint),
		),
	)
	defer span.End()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ValidationError{Field: "request", Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	tracing.Inject(ctx, httpReq.Header)

	slog.DebugContext(ctx, "sending request to provider",
		"provider", p.config.Name,
		"url", p.endpoint,
		"bytes", len(body),
	)

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, p.transportFailure(ctx, span, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.config.MaxResponseBytes+1))
	if err != nil {
		return nil, p.transportFailure(ctx, span, fmt.Errorf("failed to read response body: %w", err))
	}
	if int64(len(data)) > p.config.MaxResponseBytes {
		return nil, p.transportFailure(ctx, span,
			fmt.Errorf("response body exceeds %d bytes", p.config.MaxResponseBytes))
	}
	latency := time.Since(start)

	p.health.recordResponse(resp.StatusCode)
	span.SetAttributes(
		attribute.Int("http.response.status_code", resp.StatusCode),
		attribute.Int("http.response.body.size", len(data)),
	)
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}

	slog.DebugContext(ctx, "provider responded",
		"provider", p.config.Name,
		"status", resp.StatusCode,
		"latency_ms", latency.Milliseconds(),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		Latency:    latency,
	}, nil
}

// transportFailure classifies err, records it, and returns the typed error.
func (p *HTTPProvider) transportFailure(ctx context.Context, span trace.Span, err error) error {
	p.health.recordFailure(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	slog.WarnContext(ctx, "provider request failed",
		"provider", p.config.Name,
		"error", err,
	)

	if isTimeout(err) {
		return &TimeoutError{
			Provider: p.config.Name,
			Timeout:  p.config.Timeout,
			Cause:    err,
		}
	}
	return &TransportError{
		Provider: p.config.Name,
		Cause:    err,
	}
}

// Health returns a snapshot of call outcomes.
func (p *HTTPProvider) Health() ProviderHealth {
	return p.health.snapshot()
}

// IsHealthy reports whether recent calls reached the provider.
func (p *HTTPProvider) IsHealthy() bool {
	return p.health.snapshot().IsHealthy
}

// Close releases idle connections.
func (p *HTTPProvider) Close() error {
	p.client.CloseIdleConnections()
	slog.Debug("provider closed", "provider", p.config.Name)
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
