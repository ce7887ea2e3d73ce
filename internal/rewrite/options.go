package rewrite

// DefaultIdentifierFields are the fields whose bare value is an object identifier
// without a trailing comment.
var DefaultIdentifierFields = []string{"mainGroup", "remoteGlobalIDString", "TestTargetID"}

// DefaultLeadingKinds sort ahead of every other kind inside arrays.
var DefaultLeadingKinds = []string{"PBXGroup"}

// Options configures a Rewriter.
type Options struct {
	// IdentifierFields extends DefaultIdentifierFields.
	IdentifierFields []string
	// LeadingKinds replaces DefaultLeadingKinds when non-nil.
	LeadingKinds []string
	// PreserveArrays lists array keys (e.g. "buildPhases") whose element order
	// is kept; identifiers inside them are still substituted.
	PreserveArrays []string
}

func (o Options) identifierFields() []string {
	fields := append([]string(nil), DefaultIdentifierFields...)
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		seen[f] = true
	}
	for _, f := range o.IdentifierFields {
		if f != "" && !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields
}

func (o Options) leadingKinds() []string {
	if o.LeadingKinds == nil {
		return DefaultLeadingKinds
	}
	return o.LeadingKinds
}
