// Package proxy relays browser chat messages to an OpenAI-compatible
// completion provider.
//
// A Relay owns the fixed parts of every request: the model, the persona
// system prompt, the sampling parameters, and the provider credential. For
// each caller message it builds a two-message completion request, sends it
// once, and classifies the answer.
//
// # Request Flow
//
//  1. Client POSTs {"messages":[{"content":"..."}]} to the chat path
//  2. Middleware chain runs (recovery → request ID → tracing → logging → CORS)
//  3. ParseChatRequest extracts messages[0].content
//  4. Relay.Handle builds [persona, content] and calls the provider once
//  5. 402 and 429 become a 200 fallback; anything else is passed through
//  6. WriteResult or WriteErrorResponse writes application/json
//
// # Basic Usage
//
//	provider, err := providers.NewHTTPProvider(providers.ProviderConfig{
//	    Name:    cfg.Provider.Name,
//	    BaseURL: cfg.Provider.BaseURL,
//	    Timeout: cfg.Provider.Timeout,
//	})
//	if err != nil {
//	    return err
//	}
//
//	relay, err := proxy.NewRelay(proxy.RelayConfigFrom(cfg), provider,
//	    proxy.WithMetrics(collector))
//	if err != nil {
//	    return err
//	}
//
//	result, err := relay.Handle(ctx, "How far?")
//	if err != nil {
//	    status, errResp := proxy.HandleError(err)
//	    proxy.WriteErrorResponse(w, status, errResp)
//	    return
//	}
//	proxy.WriteResult(w, result)
//
// # Error Handling
//
// Errors produced by the relay itself use a flat body:
//
//	{"error": "Invalid request payload", "details": "messages[0].content is required"}
//	{"error": "Internal Server Error", "details": "API key is missing or invalid."}
//
// Provider error answers other than 402 and 429 are forwarded unchanged.
//
// # Thread Safety
//
// Relay is immutable after construction. Requests share nothing except the
// provider's connection pool.
package proxy
