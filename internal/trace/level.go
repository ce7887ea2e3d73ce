package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota // no tracing
	LevelError               // only emit on failure
	LevelPhase               // driver + phase boundaries
	LevelDetail              // section-level events
	LevelDebug               // everything including objects
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelError:
		return false // kept for the failure report only
	case LevelPhase:
		return scope <= ScopePhase
	case LevelDetail:
		return scope <= ScopeSection
	case LevelDebug:
		return true
	}
	return false
}

// Captures reports whether an event of scope is recorded at all. At LevelError
// phase boundaries are still kept for the failure dump.
func (l Level) Captures(scope Scope) bool {
	if l == LevelError {
		return scope <= ScopePhase
	}
	return l.ShouldEmit(scope)
}
