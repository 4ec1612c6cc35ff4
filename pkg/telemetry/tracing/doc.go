// Package tracing sets up OpenTelemetry tracing for the relay.
//
// # Spans
//
//   - relay.handle: one per chat request, from validation to response
//   - provider.send: the outbound call, a client span under relay.handle
//
// Incoming traceparent headers are honoured (HTTPMiddleware) and the trace
// context is injected into the provider call, so a trace can run from the
// browser through the relay to the provider.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    sampler: ratio          # always | never | ratio
//	    sample_ratio: 0.1
//	    exporter: otlp          # stdout | otlp
//	    endpoint: localhost:4317
//	    otlp:
//	      insecure: true
//
// The stdout exporter writes spans as JSON to stderr and is meant for local
// development. The otlp exporter ships spans over gRPC to a collector.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
// Packages that create spans use otel.Tracer(...) and pick up the provider
// installed by New. Tests install an in-memory exporter with NewWithExporter.
package tracing
