// Package types defines the JSON bodies exchanged with the browser client.
//
// # Core Types
//
// Request types:
//   - ChatRequest: inbound body, {"messages":[{"content": "..."}]}
//   - InboundMessage: one entry of messages; only the first is read
//
// Response types:
//   - ChatCompletion: choices[0].message.content of a chat completion; the
//     fallback reply sent when the provider is out of quota or rate limited
//     is built with NewFallbackResponse
//   - Choice, Message: the pieces of that body
//
// Error types:
//   - ErrorResponse: {"error": <summary>, "details": <detail>}
//
// The relay never decodes successful provider answers; it passes them through
// byte for byte. Only the ask command reads one back as a ChatCompletion.
//
// # Frontend Contract
//
// The client posts one message and renders choices[0].message.content:
//
//	fetch("/v1/chat/completions", {
//	    method: "POST",
//	    headers: {"Content-Type": "application/json"},
//	    body: JSON.stringify({messages: [{role: "user", content: "How far?"}]})
//	})
//
// The fallback reply uses the same path so the client renders it without a
// special case.
package types
