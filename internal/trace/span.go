package trace

import (
	"context"
	"sync/atomic"
	"time"
)

// Failed is the end detail of a span whose work returned an error.
const Failed = "failed"

var (
	seq     atomic.Uint64
	spanIDs atomic.Uint64
)

// Span is one traced unit of work. A nil *Span is inert, which is what Start
// returns when its scope is not captured.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Start begins a span under the span carried by ctx and returns a context that
// carries the new one.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !Enabled(ctx, scope) {
		return ctx, nil
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  spanID(ctx),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Seq:      seq.Add(1),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     name,
	})
	return context.WithValue(ctx, spanKey{}, s), s
}

// Set attaches key=value to the span's end event.
func (s *Span) Set(key, value string) {
	if s == nil {
		return
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
}

// End closes the span. A non-nil err marks it Failed and records the message.
func (s *Span) End(err error) time.Duration {
	if s == nil {
		return 0
	}
	detail := ""
	if err != nil {
		detail = Failed
		s.Set("error", err.Error())
	}
	now := time.Now()
	s.tracer.Emit(&Event{
		Time:     now,
		Seq:      seq.Add(1),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	return now.Sub(s.started)
}

// ID returns the span ID, 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Note records an instant event under the span carried by ctx.
func Note(ctx context.Context, scope Scope, name, detail string) {
	if !Enabled(ctx, scope) {
		return
	}
	FromContext(ctx).Emit(&Event{
		Time:     time.Now(),
		Seq:      seq.Add(1),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: spanID(ctx),
		Name:     name,
		Detail:   detail,
	})
}

// Enabled reports whether events of scope are recorded for ctx. Callers use it
// to skip building details nobody will see.
func Enabled(ctx context.Context, scope Scope) bool {
	t := FromContext(ctx)
	return t.Enabled() && t.Level().Captures(scope)
}
