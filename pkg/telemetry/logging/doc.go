// Package logging builds the process's slog logger.
//
// # Overview
//
//   - JSON, text, and colourized console (tint) output
//   - Optional rotating file output (lumberjack) next to stdout
//   - request_id, trace_id, and span_id taken from the context of every
//     *Context call
//   - Redaction of credentials before anything is formatted
//
// # Usage
//
//	logger, err := logging.New(logging.ConfigFrom(&cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//	defer logger.Shutdown()
//	slog.SetDefault(logger.Slog())
//
//	ctx = logging.WithRequestID(ctx, "3f0c...")
//	slog.InfoContext(ctx, "relaying chat request", "content_bytes", 42)
//	// {"level":"INFO","msg":"relaying chat request","request_id":"3f0c...","content_bytes":42}
//
// # Redaction
//
// With redaction on (the default):
//
//   - sk-... keys anywhere in a string become sk-***
//   - "Bearer <token>" becomes "Bearer ***"
//   - values under keys such as api_key, authorization, or *_token are masked
//   - email addresses become ***@***
//   - configured redact_patterns are applied last
package logging
