package trace

import (
	"io"
	"sync"
	"time"
)

// Recorder writes events to a sink, or keeps the most recent ones in a
// fixed-size history when it has none.
type Recorder struct {
	mu     sync.Mutex
	level  Level
	sink   io.Writer
	format Format
	start  time.Time

	history []Event
	next    int
	wrapped bool
}

// NewRecorder creates a Recorder. keep is ignored when sink is set.
func NewRecorder(level Level, sink io.Writer, format Format, keep int) *Recorder {
	r := &Recorder{level: level, sink: sink, format: format, start: time.Now()}
	if sink == nil && keep > 0 {
		r.history = make([]Event, keep)
	}
	return r
}

func (r *Recorder) Emit(ev *Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sink != nil {
		if r.level.ShouldEmit(ev.Scope) || ev.Kind == KindHeartbeat {
			// a broken trace sink must not fail the run
			_, _ = r.sink.Write(FormatEvent(ev, r.format, r.start)) //nolint:errcheck
		}
		return
	}
	if len(r.history) == 0 || !r.level.Captures(ev.Scope) {
		return
	}
	r.history[r.next] = *ev
	r.next = (r.next + 1) % len(r.history)
	if r.next == 0 {
		r.wrapped = true
	}
}

// Retained returns the kept events, oldest first.
func (r *Recorder) Retained() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.wrapped {
		return append([]Event(nil), r.history[:r.next]...)
	}
	out := make([]Event, 0, len(r.history))
	out = append(out, r.history[r.next:]...)
	return append(out, r.history[:r.next]...)
}

// Flush flushes the sink if it buffers.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.sink.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the sink if it is closable.
func (r *Recorder) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}
	if c, ok := r.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (r *Recorder) Level() Level { return r.level }

func (r *Recorder) Enabled() bool { return r.level > LevelOff }
