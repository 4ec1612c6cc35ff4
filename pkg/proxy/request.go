package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"unicode/utf8"

	"pidginpal-hq/relay/pkg/proxy/types"
)

const (
	// DefaultMaxBodyBytes is the request body limit used when none is
	// configured (1MB).
	DefaultMaxBodyBytes = 1 << 20

	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"
)

// ParseChatRequest reads a chat request body and returns the caller's
// message text, messages[0].content, exactly as sent.
//
// The body is limited to maxBytes (DefaultMaxBodyBytes when maxBytes is not
// positive). Any problem with the body is returned as an
// *InvalidPayloadError, including input the JSON decoder would otherwise
// repair: invalid UTF-8 and lone surrogate escapes both decode to U+FFFD,
// which would change the text sent to the provider. The content is not
// interpreted beyond that, so a whitespace-only message is accepted.
//
// Example usage:
//
//	content, err := ParseChatRequest(r, cfg.Proxy.MaxBodyBytes)
//	if err != nil {
//	    status, errResp := HandleError(err)
//	    WriteErrorResponse(w, status, errResp)
//	    return
//	}
func ParseChatRequest(r *http.Request, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	if r.Body == nil {
		return "", &InvalidPayloadError{Reason: "request body is empty"}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return "", &InvalidPayloadError{Reason: "failed to read request body", Cause: err}
	}
	if int64(len(body)) > maxBytes {
		return "", &InvalidPayloadError{
			Reason: fmt.Sprintf("request body exceeds maximum size of %d bytes", maxBytes),
		}
	}
	if len(body) == 0 {
		return "", &InvalidPayloadError{Reason: "request body is empty"}
	}
	if !utf8.Valid(body) {
		return "", &InvalidPayloadError{Reason: "request body is not valid UTF-8"}
	}

	var req types.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return "", &InvalidPayloadError{Reason: "request body is not a chat request", Cause: err}
		}
		return "", &InvalidPayloadError{Reason: "request body is not valid JSON", Cause: err}
	}

	if len(req.Messages) == 0 {
		return "", &InvalidPayloadError{Reason: "messages[0].content is required"}
	}

	raw := req.Messages[0].Content
	if len(raw) == 0 || string(raw) == "null" {
		return "", &InvalidPayloadError{Reason: "messages[0].content is required"}
	}

	var content string
	if err := json.Unmarshal(raw, &content); err != nil {
		return "", &InvalidPayloadError{Reason: "messages[0].content must be a string"}
	}
	if content == "" {
		return "", &InvalidPayloadError{Reason: "messages[0].content must not be empty"}
	}
	if countRuneErrors(content) != countReplacementChars(raw) {
		return "", &InvalidPayloadError{Reason: "messages[0].content contains an unpaired UTF-16 surrogate"}
	}

	return content, nil
}

func countRuneErrors(s string) int {
	n := 0
	for _, r := range s {
		if r == utf8.RuneError {
			n++
		}
	}
	return n
}

// countReplacementChars counts the U+FFFD characters a JSON string literal
// spells out, either as raw UTF-8 or as a \ufffd escape. encoding/json
// substitutes U+FFFD for lone surrogate escapes, so a decoded string holding
// more of them than this was altered in decoding.
func countReplacementChars(lit []byte) int {
	n := 0
	for i := 0; i < len(lit); {
		switch {
		case lit[i] == '\\' && i+1 < len(lit) && lit[i+1] == 'u' && i+6 <= len(lit):
			if v, err := strconv.ParseUint(string(lit[i+2:i+6]), 16, 32); err == nil && v == utf8.RuneError {
				n++
			}
			i += 6
		case lit[i] == '\\':
			i += 2
		default:
			r, size := utf8.DecodeRune(lit[i:])
			if r == utf8.RuneError && size == 3 {
				n++
			}
			i += size
		}
	}
	return n
}

// ExtractRequestID extracts the request ID from the X-Request-ID header.
// If the header is not present, it returns an empty string.
func ExtractRequestID(r *http.Request) string {
	return r.Header.Get(RequestIDHeader)
}
