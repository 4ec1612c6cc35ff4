package logging

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID(empty) = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "req-1")
	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("GetRequestID() = %q, want req-1", got)
	}

	ctx = WithRequestID(ctx, "req-2")
	if got := GetRequestID(ctx); got != "req-2" {
		t.Errorf("GetRequestID() after overwrite = %q, want req-2", got)
	}
}

func TestContextAttrs(t *testing.T) {
	if attrs := contextAttrs(context.Background()); len(attrs) != 0 {
		t.Errorf("contextAttrs(empty) = %v, want none", attrs)
	}

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	ctx := trace.ContextWithSpanContext(WithRequestID(context.Background(), "req-1"), sc)
	attrs := contextAttrs(ctx)

	got := make(map[string]string)
	for _, a := range attrs {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"request_id": "req-1",
		"trace_id":   "4bf92f3577b34da6a3ce929d0e0e4736",
		"span_id":    "00f067aa0ba902b7",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}
