package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives the events of a run.
type Tracer interface {
	// Emit records ev. Safe for concurrent use.
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// DefaultKeep is the number of events a Recorder retains for the failure report.
const DefaultKeep = 256

// Config describes where events go.
//
// With an Output or OutputPath the events are written as they happen. Without
// one, the last Keep events are retained and written by Report when the run
// fails.
type Config struct {
	Level      Level
	Format     Format    // FormatAuto picks from OutputPath
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "-" is stderr
	Keep       int       // zero means DefaultKeep
}

// New returns Nop when cfg.Level is off, otherwise a Recorder.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	sink := cfg.Output
	switch {
	case sink != nil:
	case cfg.OutputPath == "-":
		sink = stderr{}
	case cfg.OutputPath != "":
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace output: %w", err)
		}
		sink = f
	}
	if sink != nil {
		return NewRecorder(cfg.Level, sink, format, 0), nil
	}

	keep := cfg.Keep
	if keep <= 0 {
		keep = DefaultKeep
	}
	return NewRecorder(cfg.Level, nil, format, keep), nil
}

// stderr writes to os.Stderr without ever closing it.
type stderr struct{}

func (stderr) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

// Report writes the events retained for the last run to w, headed by the phase
// that failed. It writes nothing when t streams its events or keeps none.
func Report(t Tracer, w io.Writer) error {
	r, ok := t.(*Recorder)
	if !ok {
		return nil
	}
	events := lastRun(r.Retained())
	if len(events) == 0 {
		return nil
	}
	header := "trace: last events before failure"
	if name, ok := failedPhase(events); ok {
		header += " in " + name
	}
	if _, err := fmt.Fprintln(w, header+":"); err != nil {
		return err
	}
	start := events[0].Time
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], FormatText, start)); err != nil {
			return err
		}
	}
	return nil
}

// lastRun drops events older than the most recent driver span.
func lastRun(events []Event) []Event {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Scope == ScopeDriver && events[i].Kind == KindSpanBegin {
			return events[i:]
		}
	}
	return events
}

func failedPhase(events []Event) (string, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if ev.Scope == ScopePhase && ev.Kind == KindSpanEnd && ev.Detail == Failed {
			return ev.Name, true
		}
	}
	return "", false
}
