package rewrite

import (
	"sort"

	"pbxfmt/internal/lines"
)

// keyedEntry is a buffered sibling whose key is a known object.
type keyedEntry struct {
	lines     []string
	canonical string
	path      string
	leading   bool
}

// rewriteMap emits map-like children. Runs of entries keyed by known objects
// are sorted by canonical identifier; any other line ends the current run and
// keeps its position.
func (r *Rewriter) rewriteMap(children []*lines.Node) []string {
	out := make([]string, 0, len(children))
	var run []keyedEntry
	flush := func() {
		sort.SliceStable(run, func(i, j int) bool { return run[i].canonical < run[j].canonical })
		for _, e := range run {
			out = append(out, e.lines...)
		}
		run = run[:0]
	}
	for _, c := range children {
		if c.Kind == lines.Entry || c.Kind == lines.Map {
			if id := keyOf(c.Head()); id != "" {
				if _, ok := r.res.Lookup(id); ok {
					run = append(run, keyedEntry{lines: r.node(c), canonical: r.res.Canonical(id)})
					continue
				}
			}
		}
		flush()
		out = append(out, r.node(c)...)
	}
	flush()
	return out
}

// rewriteArray emits array elements. Runs of single-line elements naming known
// objects are sorted by leading kind, then canonical path, then canonical identifier.
func (r *Rewriter) rewriteArray(children []*lines.Node) []string {
	out := make([]string, 0, len(children))
	var run []keyedEntry
	flush := func() {
		sort.SliceStable(run, func(i, j int) bool { return arrayLess(run[i], run[j]) })
		for _, e := range run {
			out = append(out, e.lines...)
		}
		run = run[:0]
	}
	for _, c := range children {
		if c.Kind == lines.Entry && len(c.Lines) == 1 {
			if id := keyOf(c.Head()); id != "" {
				if e, ok := r.res.Lookup(id); ok {
					run = append(run, keyedEntry{
						lines:     []string{r.Line(c.Head())},
						canonical: e.ID,
						path:      e.Path,
						leading:   r.leading[e.Isa],
					})
					continue
				}
			}
		}
		flush()
		out = append(out, r.node(c)...)
	}
	flush()
	return out
}

func arrayLess(a, b keyedEntry) bool {
	if a.leading != b.leading {
		return a.leading
	}
	if a.path != b.path {
		return a.path < b.path
	}
	return a.canonical < b.canonical
}
