package proxy

import (
	"errors"
	"fmt"
	"net/http"

	"pidginpal-hq/relay/pkg/providers"
	"pidginpal-hq/relay/pkg/proxy/types"
)

// MissingCredentialDetails is the detail text of the missing credential
// response.
const MissingCredentialDetails = "API key is missing or invalid."

// InternalErrorDetails is the detail text for failures that carry no
// caller-facing message.
const InternalErrorDetails = "An internal error occurred. Please try again later."

// InvalidPayloadError means the inbound body could not be used. No provider
// call is made.
type InvalidPayloadError struct {
	// Reason describes what is wrong with the body
	Reason string

	// Cause is the underlying decode or read error, if any
	Cause error
}

// Error implements the error interface.
func (e *InvalidPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid request payload: %s: %v", e.Reason, e.Cause)
	}
	return "invalid request payload: " + e.Reason
}

// Unwrap returns the underlying error for error chain support.
func (e *InvalidPayloadError) Unwrap() error {
	return e.Cause
}

// MissingCredentialError means no provider credential is configured. It is
// raised before any network call.
type MissingCredentialError struct {
	// Provider is the provider the credential is missing for
	Provider string
}

// Error implements the error interface.
func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("provider %q: %s", e.Provider, MissingCredentialDetails)
}

// TransportError means the provider call produced no answer. The call is
// not retried.
type TransportError struct {
	// Provider is the provider that could not be reached
	Provider string

	// Cause is the error returned by the provider
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("relay to %q failed: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// details returns the client-facing message, which is the provider error
// without the relay prefix.
func (e *TransportError) details() string {
	if e.Cause == nil {
		return "provider request failed"
	}
	return e.Cause.Error()
}

// HandleError converts an error from parsing or relaying into a status code
// and an error body.
//
// Example usage:
//
//	if err != nil {
//	    status, errResp := HandleError(err)
//	    WriteErrorResponse(w, status, errResp)
//	    return
//	}
func HandleError(err error) (int, *types.ErrorResponse) {
	var payloadErr *InvalidPayloadError
	if errors.As(err, &payloadErr) {
		return http.StatusBadRequest, types.NewInvalidPayloadError(payloadErr.Reason)
	}

	var credErr *MissingCredentialError
	if errors.As(err, &credErr) {
		return http.StatusInternalServerError, types.NewServerError(MissingCredentialDetails)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return http.StatusInternalServerError, types.NewServerError(transportErr.details())
	}

	// A provider error that was not wrapped by the relay.
	if providers.IsTransportFailure(err) {
		return http.StatusInternalServerError, types.NewServerError(err.Error())
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError, types.NewServerError(InternalErrorDetails)
}

// OutcomeOf returns the relay outcome label for a non-nil error returned by
// ParseChatRequest or Relay.Handle.
func OutcomeOf(err error) string {
	var payloadErr *InvalidPayloadError
	var credErr *MissingCredentialError
	var transportErr *TransportError
	switch {
	case errors.As(err, &payloadErr):
		return OutcomeInvalidPayload
	case errors.As(err, &credErr):
		return OutcomeMissingCredential
	case errors.As(err, &transportErr), providers.IsTransportFailure(err):
		return OutcomeTransportError
	default:
		return OutcomeInternalError
	}
}
