// Package trace records what a pbxfmt run did, phase by phase.
//
//	pbxfmt --trace=- --trace-level=detail App.xcodeproj
//
// The driver opens one span per run and one per pipeline phase, notes sections
// and objects beneath them, and runs a heartbeat while a converter works.
// Without --trace the recorder keeps only its most recent events and the CLI
// prints them when the run fails, headed by the phase that failed.
//
// Levels: off, error (failure report only), phase, detail (sections),
// debug (every object).
//
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "resolve")
//	span.Set("objects", "21")
//	span.End(err)
package trace
