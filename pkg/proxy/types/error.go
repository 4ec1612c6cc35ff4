package types

// ErrorResponse is the body of every error the relay itself produces.
// Provider errors are passed through and do not use this shape.
type ErrorResponse struct {
	// Error is a short, stable summary.
	Error string `json:"error"`

	// Details explains what went wrong for this request.
	Details string `json:"details,omitempty"`
}

// Error summaries.
const (
	// ErrorInvalidPayload is used for 400 responses.
	ErrorInvalidPayload = "Invalid request payload"

	// ErrorInternalServer is used for 500 responses.
	ErrorInternalServer = "Internal Server Error"

	// ErrorMethodNotAllowed is used for 405 responses.
	ErrorMethodNotAllowed = "Method Not Allowed"
)

// NewErrorResponse creates an error response.
func NewErrorResponse(summary, details string) *ErrorResponse {
	return &ErrorResponse{Error: summary, Details: details}
}

// NewInvalidPayloadError creates the 400 body.
func NewInvalidPayloadError(details string) *ErrorResponse {
	return NewErrorResponse(ErrorInvalidPayload, details)
}

// NewServerError creates the 500 body.
func NewServerError(details string) *ErrorResponse {
	return NewErrorResponse(ErrorInternalServer, details)
}
