package types

import "encoding/json"

// ChatRequest is the inbound body posted by the client.
// Only Messages[0].Content is used; other fields and messages are ignored.
type ChatRequest struct {
	// Messages is the list sent by the client. The relay reads the first entry.
	Messages []InboundMessage `json:"messages"`
}

// InboundMessage is a single client-supplied message.
//
// Content is kept raw so that a non-string value (number, object, null) can
// be told apart from a missing field and rejected.
type InboundMessage struct {
	Role    string          `json:"role,omitempty"`
	Content json.RawMessage `json:"content"`
}
