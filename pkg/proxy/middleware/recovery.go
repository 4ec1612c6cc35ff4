package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"pidginpal-hq/relay/pkg/proxy"
	"pidginpal-hq/relay/pkg/proxy/types"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and answers 500
// with the usual {"error","details"} body. The panic value and stack are
// logged; neither is sent to the client.
//
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "panic in handler",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)

			errResp := types.NewServerError(proxy.InternalErrorDetails)
			_ = proxy.WriteErrorResponse(w, http.StatusInternalServerError, errResp)
		}()

		next.ServeHTTP(w, r)
	})
}
