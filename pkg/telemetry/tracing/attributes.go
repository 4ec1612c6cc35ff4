package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrProvider       = "pidginpal.provider"
	AttrModel          = "pidginpal.model"
	AttrRequestID      = "pidginpal.request_id"
	AttrOutcome        = "pidginpal.outcome"
	AttrContentLength  = "pidginpal.content_length"
	AttrProviderStatus = "pidginpal.provider_status_code"
	AttrFallback       = "pidginpal.fallback"
)

// SetRelayAttributes sets the attributes known when a chat request starts.
// The message content itself is never recorded, only its length.
func SetRelayAttributes(span trace.Span, requestID, provider, model string, contentLength int) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrProvider, provider),
		attribute.String(AttrModel, model),
		attribute.Int(AttrContentLength, contentLength),
	}
	if requestID != "" {
		attrs = append(attrs, attribute.String(AttrRequestID, requestID))
	}
	span.SetAttributes(attrs...)
}

// SetOutcomeAttributes sets the attributes known when a chat request ends.
// providerStatus is zero when the provider was never reached.
func SetOutcomeAttributes(span trace.Span, outcome string, providerStatus int) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrOutcome, outcome),
		attribute.Bool(AttrFallback, outcome == "fallback"),
	}
	if providerStatus != 0 {
		attrs = append(attrs, attribute.Int(AttrProviderStatus, providerStatus))
	}
	span.SetAttributes(attrs...)
}
