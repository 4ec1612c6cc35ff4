// Package telemetry groups the relay's observability packages.
//
// # Components
//
//   - logging: slog setup (JSON, text, tint console), lumberjack file
//     rotation, request-scoped fields, and credential redaction
//   - metrics: Prometheus relay outcome and provider metrics
//   - tracing: OpenTelemetry spans with stdout or OTLP gRPC export
//   - health: liveness, readiness, and version endpoints
//
// # Usage
//
//	logger, err := logging.New(logging.ConfigFrom(&cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Slog())
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(ctx)
//
// # Redaction
//
// Message content is only logged when telemetry.logging.log_payloads is on.
// Credentials are masked in every record:
//
//   - sk-abc123... → sk-***
//   - Bearer abc... → Bearer ***
//   - ada@example.com → ***@***
package telemetry
