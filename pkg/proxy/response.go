package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pidginpal-hq/relay/pkg/proxy/types"
)

// ContentTypeJSON is the content type of every relay response.
const ContentTypeJSON = "application/json"

// WriteJSONResponse writes data as JSON with the given status code.
// HTML characters are not escaped, so message text containing <, >, or &
// reaches the client as written.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteErrorResponse writes an {"error", "details"} body.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, errResp *types.ErrorResponse) error {
	return WriteJSONResponse(w, statusCode, errResp)
}

// WriteRawJSON writes body unchanged with the given status code. It is used
// to pass provider answers through byte for byte.
func WriteRawJSON(w http.ResponseWriter, statusCode int, body []byte) error {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write response body: %w", err)
	}

	return nil
}

// WriteResult writes the outcome of a successful Relay.Handle call.
func WriteResult(w http.ResponseWriter, result *Result) error {
	if result.Fallback != nil {
		return WriteJSONResponse(w, result.StatusCode, result.Fallback)
	}
	return WriteRawJSON(w, result.StatusCode, result.Body)
}
