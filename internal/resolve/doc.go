// Package resolve assigns every object of a project document a canonical path
// and a content-addressed identifier.
//
// The walk starts at the root project with path "/" and descends through the
// fields listed in walk.go. Paths only ever extend the parent's path. Target
// dependencies are the one forward reference: their path equals the path of
// their target proxy, which is only known after the first pass, so they are
// queued and settled in a second pass.
//
// Resolution ends with two unconditional checks (see Verify): every object in
// the table was reached, and no two objects share a canonical identifier.
//
// The output is plain data. Result.Paths maps each original identifier to its
// kind, path and canonical identifier; Result.Substitutions holds only the
// identifiers that change.
package resolve
