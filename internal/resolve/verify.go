package resolve

import (
	"sort"
	"strings"

	"pbxfmt/internal/diag"
	"pbxfmt/internal/model"
)

// maxListed caps how many unreached identifiers an IncompleteGraph error names.
const maxListed = 8

// Verify checks a Result against its table: every object must have a path and
// canonical identifiers must be pairwise distinct. Resolve always runs it; it
// is exported so tests can assert the invariants on hand-built results.
func Verify(table *model.Table, res *Result) error {
	var unreached []string
	for _, id := range table.IDs() {
		if _, ok := res.Paths[id]; !ok {
			unreached = append(unreached, id)
		}
	}
	if len(unreached) > 0 {
		listed := unreached
		if len(listed) > maxListed {
			listed = listed[:maxListed]
		}
		msg := strings.Join(listed, ", ")
		if len(unreached) > maxListed {
			msg += ", ..."
		}
		return diag.Errorf(diag.IncompleteGraph, "%d object(s) not reachable from the root: %s", len(unreached), msg)
	}

	ids := make([]string, 0, len(res.Paths))
	for id := range res.Paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	owner := make(map[string]string, len(ids))
	for _, id := range ids {
		e := res.Paths[id]
		if prev, dup := owner[e.ID]; dup {
			pe := res.Paths[prev]
			return diag.Errorf(diag.IdentifierCollision, "objects %s and %s both resolve to %s (%s://%s and %s://%s)",
				prev, id, e.ID, pe.Isa, pe.Path, e.Isa, e.Path)
		}
		owner[e.ID] = id
	}
	return nil
}
