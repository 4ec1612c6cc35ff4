package providers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"
)

// Message roles understood by chat completion providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single message in a completion request.
// Timestamp is kept for logging and never sent to the provider.
type ChatMessage struct {
	// Role is one of RoleSystem, RoleUser, or RoleAssistant.
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Timestamp is when the message was created.
	Timestamp time.Time `json:"-"`
}

// CompletionRequest is the request body sent to the provider's chat
// completion endpoint. Sampling parameters are pointers so that unset
// values are omitted from the payload rather than sent as zero.
type CompletionRequest struct {
	// Model is the provider model identifier (e.g., "gpt-4o-mini").
	Model string `json:"model"`

	// Messages is the conversation, oldest first.
	Messages []ChatMessage `json:"messages"`

	// MaxTokens limits the number of generated tokens.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 2.0).
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP controls nucleus sampling (0.0 to 1.0).
	TopP *float64 `json:"top_p,omitempty"`

	// Stream requests a streamed response. Always false for the relay.
	Stream bool `json:"stream"`
}

// MarshalBody encodes the request as JSON without HTML escaping, so message
// content containing <, >, or & reaches the provider as written.
func (r *CompletionRequest) MarshalBody() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	// Encode appends a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Response is the raw result of a provider call that reached the provider.
// The body is opaque; callers decide whether to forward or replace it.
type Response struct {
	// StatusCode is the provider's HTTP status code.
	StatusCode int

	// Header contains the provider's response headers.
	Header http.Header

	// Body is the raw response body.
	Body []byte

	// Latency is the time from sending the request to reading the full body.
	Latency time.Duration
}
