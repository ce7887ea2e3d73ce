package rewrite

import (
	"regexp"
	"sort"
	"strings"

	"pbxfmt/internal/diag"
	"pbxfmt/internal/lines"
	"pbxfmt/internal/resolve"
	"pbxfmt/internal/source"
)

// token matches one plist scalar that may be an identifier: a quoted string or
// a run of characters that cannot start a comment or delimit a value.
const token = `("[^"]*"|[^\s"=;,(){}/]+)`

// Rewriter holds the immutable configuration of one rewrite run.
type Rewriter struct {
	res      *resolve.Result
	patterns []*regexp.Regexp
	leading  map[string]bool
	preserve map[string]bool
}

// New builds a Rewriter over the resolver's tables.
func New(res *resolve.Result, opts Options) *Rewriter {
	fields := opts.identifierFields()
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	r := &Rewriter{
		res: res,
		patterns: []*regexp.Regexp{
			// identifier followed by its comment: "ABC /* main.swift */"
			regexp.MustCompile(token + ` /\*`),
			// identifier opening a dictionary: "ABC = {"
			regexp.MustCompile(`^\s*` + token + ` = \{`),
			// bare identifier values: "mainGroup = ABC;"
			regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `) = ` + token + `;`),
		},
		leading:  toSet(opts.leadingKinds()),
		preserve: toSet(opts.PreserveArrays),
	}
	return r
}

// Rewrite produces the canonical lines of a structured file. The result always
// has as many lines as the input tree.
func (r *Rewriter) Rewrite(nodes []*lines.Node) ([]string, error) {
	out := r.rewriteMap(nodes)
	if want := len(lines.Flatten(nodes)); len(out) != want {
		return nil, diag.Errorf(diag.StructureError, "rewrite produced %d lines from %d", len(out), want)
	}
	return out, nil
}

type occurrence struct {
	start, end int
	id         string
}

// Line substitutes every recognised identifier occurrence in one line.
func (r *Rewriter) Line(line string) string {
	var occs []occurrence
	seen := make(map[int]bool)
	for _, re := range r.patterns {
		for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
			start, end := m[2], m[3]
			if seen[start] {
				continue
			}
			seen[start] = true
			id := unquote(line[start:end])
			if canonical, ok := r.res.Substitutions[id]; ok {
				occs = append(occs, occurrence{start: start, end: end, id: canonical})
			}
		}
	}
	if len(occs) == 0 {
		return line
	}
	// right to left keeps earlier offsets valid
	sort.Slice(occs, func(i, j int) bool { return occs[i].start > occs[j].start })
	for _, o := range occs {
		line = line[:o.start] + o.id + line[o.end:]
	}
	return line
}

func (r *Rewriter) node(n *lines.Node) []string {
	switch n.Kind {
	case lines.Map, lines.Section:
		out := []string{r.Line(n.Head())}
		out = append(out, r.rewriteMap(n.Children)...)
		return append(out, r.Line(n.Close))
	case lines.Array:
		out := []string{r.Line(n.Head())}
		if r.preserve[keyOf(n.Head())] {
			for _, c := range n.Children {
				out = append(out, r.node(c)...)
			}
		} else {
			out = append(out, r.rewriteArray(n.Children)...)
		}
		return append(out, r.Line(n.Close))
	default:
		out := make([]string, len(n.Lines))
		for i, l := range n.Lines {
			out[i] = r.Line(l)
		}
		return out
	}
}

func keyOf(line string) string {
	t := strings.TrimLeft(source.TrimEOL(line), " \t")
	if strings.HasPrefix(t, `"`) {
		if end := strings.IndexByte(t[1:], '"'); end >= 0 {
			return t[1 : end+1]
		}
		return ""
	}
	if end := strings.IndexAny(t, " \t=;,(){}"); end >= 0 {
		return t[:end]
	}
	return t
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
