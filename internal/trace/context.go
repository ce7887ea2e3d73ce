package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// FromContext returns the Tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// spanID returns the ID of the innermost span started from ctx, 0 if none.
func spanID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s.ID()
}
