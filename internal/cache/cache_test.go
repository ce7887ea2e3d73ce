package cache

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbxfmt/internal/source"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"rootObject": "R",
		"objects": map[string]any{
			"R": map[string]any{
				"isa":     "PBXProject",
				"targets": []any{"T1", "T2"},
			},
		},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	key := source.Digest(sha256.Sum256([]byte("project")))
	require.NoError(t, c.Put(key, "native", sampleDoc()))

	doc, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)

	top, isMap := doc.(map[string]any)
	require.True(t, isMap, "decoded %T", doc)
	assert.Equal(t, "R", top["rootObject"])
	root := top["objects"].(map[string]any)["R"].(map[string]any)
	assert.Equal(t, []any{"T1", "T2"}, root["targets"])
}

func TestGetMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	_, ok, err := c.Get(source.Digest{1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	require.NoError(t, c.Put(source.Digest{1}, "native", sampleDoc()))
	_, ok, err := c.Get(source.Digest{1})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.DropAll())
	assert.Empty(t, c.Dir())
}

func TestCorruptPayloadIsError(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := source.Digest{2}
	p := c.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte{0xc1}, 0o600))

	_, ok, err := c.Get(key)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pbxfmt")
	c, err := Open(dir)
	require.NoError(t, err)
	key := source.Digest{3}
	require.NoError(t, c.Put(key, "native", sampleDoc()))

	require.NoError(t, c.DropAll())
	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.DirExists(t, dir)
}

func TestDefaultDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir("pbxfmt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "pbxfmt"), dir)
}
