// Package providers implements the outbound call to the completion provider.
//
// # Overview
//
// The package owns the wire format of a chat completion request and a single
// transport, HTTPProvider, that posts it to an OpenAI-compatible
// /chat/completions endpoint. It deliberately knows nothing about how the
// answer is interpreted: any status the provider returns, including 402, 429,
// and 5xx, comes back as a *Response with the raw body. The relay decides
// what the caller sees.
//
// # Basic Usage
//
//	provider, err := providers.NewHTTPProvider(providers.ProviderConfig{
//	    Name:    "openai",
//	    BaseURL: "https://api.openai.com/v1",
//	    Timeout: 30 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	resp, err := provider.Send(ctx, apiKey, &providers.CompletionRequest{
//	    Model: "gpt-4o-mini",
//	    Messages: []providers.ChatMessage{
//	        {Role: providers.RoleSystem, Content: "Be brief."},
//	        {Role: providers.RoleUser, Content: "How far?"},
//	    },
//	})
//	if err != nil {
//	    // no answer: *TransportError or *TimeoutError
//	}
//	fmt.Println(resp.StatusCode, string(resp.Body))
//
// # Delivery Semantics
//
// Every Send makes at most one HTTP request. There are no retries; a
// metered provider should not be charged twice for one user message, and the
// browser client already shows its own message on failure. The HTTP client
// timeout bounds the whole exchange.
//
// # Error Types
//
//   - TransportError: the request did not produce a complete answer
//   - TimeoutError: the configured timeout elapsed
//   - ValidationError: the request could not be encoded; nothing was sent
//   - ConfigError: NewHTTPProvider was given an unusable configuration
//
// # Observability
//
// Each call runs in a "provider.send" client span, and W3C trace context is
// injected into the outbound headers so the provider side can join the trace
// if it participates. HTTPProvider also keeps a ProviderHealth snapshot that
// counts only transport failures against the provider.
//
// # Testing
//
// Provider is a one-method interface. ProviderFunc turns a closure into a
// Provider, which is how relay tests count and inspect outbound calls
// without a network.
package providers
