package lines

import (
	"regexp"
	"strings"

	"fortio.org/safecast"

	"pbxfmt/internal/diag"
	"pbxfmt/internal/source"
)

// Structurer builds Node trees. It is immutable and safe to reuse.
type Structurer struct {
	sectionBegin *regexp.Regexp
	sectionEnd   *regexp.Regexp
}

// NewStructurer compiles the section marker patterns.
func NewStructurer() *Structurer {
	return &Structurer{
		sectionBegin: regexp.MustCompile(`^/\* Begin (\S+) section \*/$`),
		sectionEnd:   regexp.MustCompile(`^/\* End (\S+) section \*/$`),
	}
}

// Structure groups lines into a tree. Every input line ends up in exactly one
// node, so Flatten(result) equals lines.
func Structure(lines []string) ([]*Node, error) {
	return NewStructurer().Structure(lines)
}

// Structure groups lines into a tree.
func (s *Structurer) Structure(lines []string) ([]*Node, error) {
	p := &parser{s: s, lines: lines}
	nodes, _, err := p.parseBody(frame{})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// frame is the group currently being filled. The zero frame is the file itself.
type frame struct {
	kind   Kind
	indent string
	name   string
	line   uint32
}

type parser struct {
	s     *Structurer
	lines []string
	pos   int
}

func (p *parser) lineNo(idx int) (uint32, error) {
	n, err := safecast.Conv[uint32](idx + 1)
	if err != nil {
		return 0, diag.Wrap(diag.StructureError, err, "line number overflow")
	}
	return n, nil
}

// parseBody consumes lines until the closing line of f and returns the body
// nodes together with that closing line.
func (p *parser) parseBody(f frame) ([]*Node, string, error) {
	var nodes []*Node
	for p.pos < len(p.lines) {
		raw := p.lines[p.pos]
		text := source.TrimEOL(raw)
		trimmed := strings.TrimSpace(text)
		lineNo, err := p.lineNo(p.pos)
		if err != nil {
			return nil, "", err
		}

		if m := p.s.sectionBegin.FindStringSubmatch(trimmed); m != nil {
			p.pos++
			children, closing, err := p.parseBody(frame{kind: Section, name: m[1], line: lineNo})
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, &Node{Kind: Section, Lines: []string{raw}, Children: children, Close: closing, Name: m[1], Line: lineNo})
			continue
		}
		if m := p.s.sectionEnd.FindStringSubmatch(trimmed); m != nil {
			if f.kind != Section {
				return nil, "", diag.AtLine(diag.StructureError, int(lineNo), "%q has no matching Begin marker", trimmed)
			}
			if m[1] != f.name {
				return nil, "", diag.AtLine(diag.StructureError, int(lineNo), "section %s (opened at line %d) closed as %s", f.name, f.line, m[1])
			}
			p.pos++
			return nodes, raw, nil
		}

		if trimmed == "" {
			p.pos++
			nodes = append(nodes, &Node{Kind: Entry, Lines: []string{raw}, Line: lineNo})
			continue
		}

		indent := leadingIndent(text)
		if c := trimmed[0]; c == '}' || c == ')' {
			if closes(f, c) && indent == f.indent {
				p.pos++
				return nodes, raw, nil
			}
			return nil, "", diag.AtLine(diag.StructureError, int(lineNo), "unexpected %q%s", string(c), f.describe())
		}
		if (f.kind == Map || f.kind == Array) && len(indent) <= len(f.indent) {
			return nil, "", diag.AtLine(diag.StructureError, int(lineNo), "line is not indented inside the %s opened at line %d", f.kind, f.line)
		}

		if isComment(trimmed) {
			p.pos++
			nodes = append(nodes, &Node{Kind: Entry, Lines: []string{raw}, Line: lineNo})
			continue
		}
		if !endsInString(text, false) {
			switch trimmed[len(trimmed)-1] {
			case '{', '(':
				kind := Map
				if trimmed[len(trimmed)-1] == '(' {
					kind = Array
				}
				p.pos++
				children, closing, err := p.parseBody(frame{kind: kind, indent: indent, line: lineNo})
				if err != nil {
					return nil, "", err
				}
				nodes = append(nodes, &Node{Kind: kind, Lines: []string{raw}, Children: children, Close: closing, Line: lineNo})
				continue
			}
		}

		entry, err := p.parseEntry(lineNo)
		if err != nil {
			return nil, "", err
		}
		nodes = append(nodes, entry)
	}

	if f.kind != 0 {
		what := f.kind.String()
		if f.kind == Section {
			what = "section " + f.name
		}
		return nil, "", diag.AtLine(diag.StructureError, int(f.line), "unterminated %s", what)
	}
	return nodes, "", nil
}

// parseEntry consumes one leaf entry. A line is complete when it ends in ';'
// or ',' outside a string literal; otherwise the entry continues on the
// following lines.
func (p *parser) parseEntry(lineNo uint32) (*Node, error) {
	start := p.pos
	inString := false
	for p.pos < len(p.lines) {
		text := source.TrimEOL(p.lines[p.pos])
		trimmed := strings.TrimSpace(text)
		inString = endsInString(text, inString)
		p.pos++

		if inString {
			continue
		}
		if strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, ",") {
			return &Node{Kind: Entry, Lines: p.lines[start:p.pos:p.pos], Line: lineNo}, nil
		}
		if p.pos-start == 1 {
			return nil, diag.AtLine(diag.StructureError, int(lineNo), "cannot classify line %q", trimmed)
		}
	}
	return nil, diag.AtLine(diag.StructureError, int(lineNo), "unterminated entry")
}

func (f frame) describe() string {
	switch f.kind {
	case Map, Array:
		return " inside the " + f.kind.String() + " opened at line " + itoa(f.line)
	case Section:
		return " inside section " + f.name
	default:
		return " at top level"
	}
}

func closes(f frame, c byte) bool {
	return (f.kind == Map && c == '}') || (f.kind == Array && c == ')')
}

func leadingIndent(text string) string {
	return text[:len(text)-len(strings.TrimLeft(text, " \t"))]
}

func isComment(trimmed string) bool {
	if strings.HasPrefix(trimmed, "//") {
		return true
	}
	return strings.HasPrefix(trimmed, "/*") && strings.HasSuffix(trimmed, "*/")
}

// endsInString reports whether text leaves a double-quoted string open, given
// whether one was open at its start. Block comments outside strings are skipped.
func endsInString(text string, inString bool) bool {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return false
			}
			i += end + 3
		}
	}
	return inString
}
