package version

import (
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func override(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })
}

func noColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestDefaultVersion(t *testing.T) {
	assert.NotEmpty(t, Version)
}

func TestColoredKeepsText(t *testing.T) {
	noColor(t)
	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "nightly"} {
		override(t, v, "", "")
		assert.Equal(t, v, Colored())
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })
	override(t, "1.2.3", "", "")

	out := Colored()
	assert.NotEqual(t, "1.2.3", out)
	assert.Contains(t, out, "\x1b[")
}

func TestPretty(t *testing.T) {
	noColor(t)
	override(t, "1.2.3", "abc123", "2026-01-15T10:30:00Z")
	assert.Equal(t, "pbxfmt 1.2.3\ncommit: abc123\nbuilt:  2026-01-15T10:30:00Z\n", Pretty())

	override(t, "1.2.3", "", "")
	assert.Equal(t, "pbxfmt 1.2.3\n", Pretty())
}

func TestJSON(t *testing.T) {
	override(t, "1.2.3", "abc123", "")
	out, err := JSON()
	require.NoError(t, err)

	var info Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Info{Version: "1.2.3", GitCommit: "abc123"}, info)
	assert.NotContains(t, out, "build_date")
}
