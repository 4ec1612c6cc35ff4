package middleware

import (
	"net/http"

	"pidginpal-hq/relay/pkg/proxy"
	"pidginpal-hq/relay/pkg/telemetry/logging"

	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header carrying the request ID.
const RequestIDHeader = proxy.RequestIDHeader

// maxRequestIDLength bounds a caller-supplied request ID. Longer values are
// replaced with a generated one.
const maxRequestIDLength = 128

// RequestIDMiddleware assigns every request an ID. A caller-supplied
// X-Request-ID is reused; otherwise a UUID v4 is generated.
//
// The request ID is:
//   - Stored in the request context (logging.GetRequestID)
//   - Echoed in the X-Request-ID response header
//   - Attached to every log record written with that context
//
// Example usage:
//
//	handler = RequestIDMiddleware(handler)
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := proxy.ExtractRequestID(r)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
