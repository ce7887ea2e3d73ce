package resolve

// Entry is the resolved identity of one object.
type Entry struct {
	Isa  string
	Path string
	ID   string
}

// Result holds the two lookup tables consumed by the rewriter.
type Result struct {
	// Paths maps every original identifier to its resolved entry.
	Paths map[string]Entry
	// Substitutions maps original identifiers to canonical ones, only where they differ.
	Substitutions map[string]string
}

// Lookup returns the entry of an original identifier.
func (r *Result) Lookup(id string) (Entry, bool) {
	e, ok := r.Paths[id]
	return e, ok
}

// Canonical returns the identifier an original one is rewritten to. Identifiers
// missing from Substitutions are already canonical.
func (r *Result) Canonical(id string) string {
	if sub, ok := r.Substitutions[id]; ok {
		return sub
	}
	return id
}
