package providers

import "context"

// Provider sends a single chat completion request to an LLM provider.
//
// Send must issue at most one outbound request and must not retry. When the
// provider answers, Send returns its status and body whatever the status is;
// a non-2xx answer is a Response, not an error. An error is returned only
// when no answer was obtained (connection failure, timeout, TLS failure,
// truncated body), and is then a *TransportError or *TimeoutError.
//
// apiKey is the bearer credential for this call. The caller owns the
// credential and guarantees it is non-empty.
//
// Implementations must be safe for concurrent use and must respect context
// cancellation.
type Provider interface {
	Send(ctx context.Context, apiKey string, req *CompletionRequest) (*Response, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(ctx context.Context, apiKey string, req *CompletionRequest) (*Response, error)

// Send calls f(ctx, apiKey, req).
func (f ProviderFunc) Send(ctx context.Context, apiKey string, req *CompletionRequest) (*Response, error) {
	return f(ctx, apiKey, req)
}
