package lines_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbxfmt/internal/diag"
	"pbxfmt/internal/lines"
	"pbxfmt/internal/source"
	"pbxfmt/internal/testkit"
)

func TestStructure_SampleRoundTrip(t *testing.T) {
	in := source.SplitLines([]byte(testkit.SampleProject))
	nodes, err := lines.Structure(in)
	require.NoError(t, err)
	assert.Equal(t, in, lines.Flatten(nodes))

	// "// !$*UTF8*$!", the root map, and the trailing empty line.
	require.Len(t, nodes, 3)
	assert.Equal(t, lines.Entry, nodes[0].Kind)
	root := nodes[1]
	assert.Equal(t, lines.Map, root.Kind)
	assert.Equal(t, "{", root.Head())
	assert.Equal(t, "}", root.Close)
	assert.Equal(t, uint32(2), root.Line)

	var objects *lines.Node
	for _, c := range root.Children {
		if strings.Contains(c.Head(), "objects = {") {
			objects = c
		}
	}
	require.NotNil(t, objects)

	var sections []string
	for _, c := range objects.Children {
		if c.Kind == lines.Section {
			sections = append(sections, c.Name)
		}
	}
	assert.Equal(t, []string{
		"PBXBuildFile", "PBXContainerItemProxy", "PBXFileReference", "PBXGroup",
		"PBXNativeTarget", "PBXProject", "PBXSourcesBuildPhase", "PBXTargetDependency",
		"XCBuildConfiguration", "XCConfigurationList",
	}, sections)
}

func TestStructure_NestedGroups(t *testing.T) {
	in := []string{
		"\tobjects = {",
		"/* Begin PBXGroup section */",
		"\t\tAAA /* G */ = {",
		"\t\t\tisa = PBXGroup;",
		"\t\t\tchildren = (",
		"\t\t\t\tBBB /* b */,",
		"\t\t\t);",
		"\t\t};",
		"/* End PBXGroup section */",
		"\t};",
	}
	nodes, err := lines.Structure(in)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	objects := nodes[0]
	require.Equal(t, lines.Map, objects.Kind)
	require.Len(t, objects.Children, 1)
	section := objects.Children[0]
	assert.Equal(t, lines.Section, section.Kind)
	assert.Equal(t, "PBXGroup", section.Name)
	require.Len(t, section.Children, 1)

	group := section.Children[0]
	assert.Equal(t, lines.Map, group.Kind)
	require.Len(t, group.Children, 2)
	children := group.Children[1]
	assert.Equal(t, lines.Array, children.Kind)
	require.Len(t, children.Children, 1)
	assert.Equal(t, "\t\t\t\tBBB /* b */,", children.Children[0].Head())
	assert.Equal(t, uint32(6), children.Children[0].Line)
	assert.Equal(t, in, lines.Flatten(nodes))
}

func TestStructure_MultiLineString(t *testing.T) {
	in := []string{
		"{",
		"\tshellScript = \"echo one;",
		"if true; then {",
		"  echo \\\"two\\\";",
		"}\";",
		"\tname = x;",
		"}",
	}
	nodes, err := lines.Structure(in)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	body := nodes[0].Children
	require.Len(t, body, 2)
	assert.Equal(t, lines.Entry, body[0].Kind)
	assert.Len(t, body[0].Lines, 4)
	assert.Equal(t, in, lines.Flatten(nodes))
}

func TestStructure_CommentsWithQuotes(t *testing.T) {
	in := []string{
		"{",
		"\tA /* Build configuration list for PBXNativeTarget \"App */ = {",
		"\t};",
		"}",
	}
	nodes, err := lines.Structure(in)
	require.NoError(t, err)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, lines.Map, nodes[0].Children[0].Kind)
}

func TestStructure_CRLF(t *testing.T) {
	text := strings.ReplaceAll(testkit.SampleProject, "\n", "\r\n")
	in := source.SplitLines([]byte(text))
	nodes, err := lines.Structure(in)
	require.NoError(t, err)
	assert.Equal(t, text, string(source.JoinLines(lines.Flatten(nodes))))
}

func TestStructure_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		line int
	}{
		{"unterminated map", []string{"{", "\ta = 1;"}, 1},
		{"unterminated array", []string{"{", "\tx = (", "\t\ta,", "}"}, 4},
		{"unterminated section", []string{"{", "/* Begin PBXGroup section */", "\t\ta = 1;", "}"}, 4},
		{"mismatched section", []string{"/* Begin PBXGroup section */", "/* End PBXFileReference section */"}, 2},
		{"stray end marker", []string{"/* End PBXGroup section */"}, 1},
		{"wrong closer", []string{"{", "\tx = (", "\t};", "}"}, 3},
		{"unclassifiable", []string{"{", "\tx = 1", "}"}, 2},
		{"unterminated string", []string{"{", "\tx = \"abc;", "}"}, 2},
		{"outdented body line", []string{"\tx = {", "\ty = 1;", "\t};"}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lines.Structure(tc.in)
			require.Error(t, err)
			assert.Equal(t, diag.StructureError, diag.CodeOf(err))
			var de *diag.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.line, de.Line, err.Error())
		})
	}
}
