package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbxfmt/internal/diag"
)

func write(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "auto", cfg.Conversion.Converter)
	assert.Equal(t, []string{"PBXGroup"}, cfg.Sort.LeadingKinds)
	assert.False(t, cfg.Cache.Enabled)
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := write(t, t.TempDir(), `
[conversion]
converter = "native"
timeout = "750ms"

[cache]
enabled = true
dir = "/tmp/pbxfmt-cache"

[sort]
preserve_arrays = ["buildPhases"]

[rewrite]
identifier_fields = ["testTargetID"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "native", cfg.Conversion.Converter)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/pbxfmt-cache", cfg.Cache.Dir)
	assert.Equal(t, []string{"PBXGroup"}, cfg.Sort.LeadingKinds, "unset keys keep defaults")
	assert.Equal(t, []string{"buildPhases"}, cfg.Sort.PreserveArrays)
	assert.Equal(t, []string{"testTargetID"}, cfg.Rewrite.IdentifierFields)
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, d)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"unknown key", "[conversion]\nconverter = \"native\"\nspeed = 3\n", "conversion.speed"},
		{"unknown section", "[lint]\nstrict = true\n", "lint"},
		{"bad converter", "[conversion]\nconverter = \"xml\"\n", "converter"},
		{"bad timeout", "[conversion]\ntimeout = \"soon\"\n", "timeout"},
		{"negative timeout", "[conversion]\ntimeout = \"-1s\"\n", "positive"},
		{"syntax", "[conversion\n", "TOML"},
		{"empty kind", "[sort]\nleading_kinds = [\"\"]\n", "leading_kinds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, t.TempDir(), tt.body))
			require.Error(t, err)
			assert.Equal(t, diag.UsageError, diag.CodeOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, root, "[conversion]\nconverter = \"native\"\n")
	nested := filepath.Join(root, "App.xcodeproj")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, "native", cfg.Conversion.Converter)
	assert.Equal(t, filepath.Join(root, FileName), cfg.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	assert.Equal(t, diag.UsageError, diag.CodeOf(err))
}
