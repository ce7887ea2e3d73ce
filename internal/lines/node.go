// Package lines groups the raw lines of a project file into nested sections,
// maps, arrays and entries without interpreting their content.
package lines

// Kind classifies a Node.
type Kind uint8

const (
	// Entry is a leaf: one line, or several when a quoted string spans lines.
	Entry Kind = iota + 1
	// Map is a "key = {" … "};" group.
	Map
	// Array is a "key = (" … ");" group.
	Array
	// Section is a "/* Begin X section */" … "/* End X section */" group.
	Section
)

func (k Kind) String() string {
	switch k {
	case Entry:
		return "entry"
	case Map:
		return "map"
	case Array:
		return "array"
	case Section:
		return "section"
	default:
		return "unknown"
	}
}

// Node is one element of the structured line tree.
//
// For an Entry, Lines holds every line of the entry. For a group, Lines holds
// the single opening line, Children the body and Close the closing line.
type Node struct {
	Kind     Kind
	Lines    []string
	Children []*Node
	Close    string
	// Name is the section name for Section nodes.
	Name string
	// Line is the 1-based line number of the node's first line.
	Line uint32
}

// Head returns the first line of the node.
func (n *Node) Head() string {
	if len(n.Lines) == 0 {
		return ""
	}
	return n.Lines[0]
}

// IsGroup reports whether the node brackets child nodes.
func (n *Node) IsGroup() bool {
	return n.Kind == Map || n.Kind == Array || n.Kind == Section
}

// Flatten returns the lines of nodes in order; it is the inverse of Structure.
func Flatten(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		out = appendNode(out, n)
	}
	return out
}

func appendNode(out []string, n *Node) []string {
	out = append(out, n.Lines...)
	if n.IsGroup() {
		for _, c := range n.Children {
			out = appendNode(out, c)
		}
		out = append(out, n.Close)
	}
	return out
}
