package trace

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seq     atomic.Uint64
	spanIDs atomic.Uint64
)

func emit(t Tracer, ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	ev.Seq = seq.Add(1)
	t.Emit(&ev)
}

// Span is an open begin/end pair. A span whose scope the tracer drops is
// inert: it emits nothing and reports its parent as its ID, so children
// attach to the nearest live ancestor.
type Span struct {
	t      Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	start  time.Time
	attrs  []Attr
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Level().Admits(scope) {
		return &Span{parent: parent}
	}
	s := &Span{t: t, id: spanIDs.Add(1), parent: parent, scope: scope, name: name, start: time.Now()}
	emit(t, Event{Time: s.start, Kind: KindBegin, Scope: scope, Span: s.id, Parent: parent, Name: name})
	return s
}

// Set adds an attr to the end event.
func (s *Span) Set(key, value string) *Span {
	if s != nil && s.t != nil {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End emits the end event with the span duration in "ms" and returns the
// duration. Inert and already ended spans return 0.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.t == nil {
		return 0
	}
	d := time.Since(s.start)
	attrs := append(s.attrs, Attr{Key: "ms", Value: strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 3, 64)})
	emit(s.t, Event{Kind: KindEnd, Scope: s.scope, Span: s.id, Parent: s.parent, Name: s.name, Detail: detail, Attrs: attrs})
	s.t = nil
	return d
}

// ID returns the span ID, or the parent's ID for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	if s.id == 0 {
		return s.parent
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64, attrs ...Attr) {
	if t == nil || !t.Level().Admits(scope) {
		return
	}
	emit(t, Event{Kind: KindPoint, Scope: scope, Parent: parent, Name: name, Detail: detail, Attrs: attrs})
}

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer stores t in ctx; nil stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// CurrentSpan returns the ID of the span stored in ctx, or 0.
func CurrentSpan(ctx context.Context) uint64 {
	if ctx != nil {
		if id, ok := ctx.Value(spanKey{}).(uint64); ok {
			return id
		}
	}
	return 0
}

// WithSpan makes s the parent of spans begun from the returned context.
func WithSpan(ctx context.Context, s *Span) context.Context {
	return context.WithValue(ctx, spanKey{}, s.ID())
}
