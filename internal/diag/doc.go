// Package diag defines the failure taxonomy shared by every pipeline phase.
//
// # Purpose
//
//   - Give each failure a stable Code so the CLI, tests and tooling can tell a
//     usage mistake from a malformed document or an internal modelling bug.
//   - Keep the model data-only: an Error carries a code, a short message, an
//     optional 1-based line number and an optional wrapped cause.
//
// # Scope
//
// Package diag performs no formatting beyond Error.Error and no IO. Rendering
// (colour, exit status) lives in cmd/pbxfmt.
//
// # Codes
//
//   - UsageError – bad or missing path argument, unsupported extension, bad flags/config.
//   - IOError – the project file could not be read or written.
//   - ConversionError / ConversionTimeout – the plist conversion collaborator failed or hung.
//   - MalformedDocument – a field required by the graph walk is absent or mistyped.
//   - IdentifierCollision / IncompleteGraph – consistency violations after resolution.
//   - StructureError – the text could not be grouped into sections, maps and arrays.
//
// Every code is fatal. Nothing in the pipeline retries: all phases are
// deterministic, so a second attempt on the same bytes cannot succeed.
package diag
