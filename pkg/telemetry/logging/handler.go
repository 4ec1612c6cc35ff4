package logging

import (
	"context"
	"log/slog"
)

// Handler is a slog.Handler that adds request-scoped fields from the context
// and redacts sensitive values before passing records on.
//
// Context fields always land at the top level of the record, even after
// WithGroup.
type Handler struct {
	base     slog.Handler // the wrapped handler, before any WithAttrs or WithGroup
	next     slog.Handler // base with ops applied
	ops      []handlerOp
	grouped  bool
	redactor *Redactor
}

// handlerOp is one WithAttrs or WithGroup call, kept so it can be replayed
// after the context fields are attached.
type handlerOp struct {
	group string
	attrs []slog.Attr
}

func (op handlerOp) apply(h slog.Handler) slog.Handler {
	if op.group != "" {
		return h.WithGroup(op.group)
	}
	return h.WithAttrs(op.attrs)
}

// NewHandler wraps next. A nil redactor disables redaction.
func NewHandler(next slog.Handler, redactor *Redactor) *Handler {
	return &Handler{base: next, next: next, redactor: redactor}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	fields := contextAttrs(ctx)
	if h.redactor == nil && len(fields) == 0 {
		return h.next.Handle(ctx, r)
	}

	target := h.next
	if h.grouped && len(fields) > 0 {
		target = h.base.WithAttrs(fields)
		for _, op := range h.ops {
			target = op.apply(target)
		}
		fields = nil
	}

	out := slog.NewRecord(r.Time, r.Level, h.redact(r.Message), r.PC)
	out.AddAttrs(fields...)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redactAttr(a))
		return true
	})
	return target.Handle(ctx, out)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redactAttr(a)
	}
	return h.with(handlerOp{attrs: redacted}, h.grouped)
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(handlerOp{group: name}, true)
}

func (h *Handler) with(op handlerOp, grouped bool) *Handler {
	return &Handler{
		base:     h.base,
		next:     op.apply(h.next),
		ops:      append(h.ops[:len(h.ops):len(h.ops)], op),
		grouped:  grouped,
		redactor: h.redactor,
	}
}

func (h *Handler) redact(s string) string {
	if h.redactor == nil {
		return s
	}
	return h.redactor.RedactString(s)
}

func (h *Handler) redactAttr(a slog.Attr) slog.Attr {
	if h.redactor == nil {
		return a
	}
	return h.redactor.RedactAttr(a)
}
