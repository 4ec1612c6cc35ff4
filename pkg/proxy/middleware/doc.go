// Package middleware provides HTTP middleware for cross-cutting concerns:
// request IDs, access logging, CORS, and panic recovery.
//
// # Middleware Chain
//
// The server wraps its mux in this order (outermost first):
//
//	handler = Recovery(RequestID(tracing.HTTPMiddleware(Logging(CORS(mux)))))
//
//  1. Recovery: turn a handler panic into a 500 response
//  2. RequestID: echo or generate X-Request-ID, store it in the context
//  3. tracing.HTTPMiddleware: continue the caller's W3C trace
//  4. Logging: one access log record per request
//  5. CORS: allow-list origins and answer preflight requests
//
// # Request ID
//
// RequestIDMiddleware reuses a caller-supplied X-Request-ID or generates a
// UUID v4:
//
//	X-Request-ID: 550e8400-e29b-41d4-a716-446655440000
//
// The ID is stored with logging.WithRequestID, so every record written
// through slog's *Context functions carries it.
//
// # CORS
//
// CORSMiddleware is configured from proxy.cors:
//
//	proxy:
//	  cors:
//	    enabled: true
//	    allowed_origins: ["http://localhost:5173", "https://pidginpal.vercel.app"]
//	    allowed_methods: ["POST", "OPTIONS"]
//	    allowed_headers: ["Content-Type", "Authorization"]
//	    max_age: 0
//
// Only allow-listed origins are echoed in Access-Control-Allow-Origin. The
// method and header lists go out on every response. Preflight requests get
// 200 with an empty body.
//
// # Recovery
//
// RecoveryMiddleware logs the panic with its stack and answers:
//
//	{"error":"Internal Server Error","details":"An internal error occurred. Please try again later."}
package middleware
