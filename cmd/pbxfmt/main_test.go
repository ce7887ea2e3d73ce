package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbxfmt/internal/testkit"
)

type project struct {
	root   string
	bundle string
	file   string
}

func newProject(t *testing.T, content, cfg string) project {
	t.Helper()
	root := t.TempDir()
	bundle := filepath.Join(root, "App.xcodeproj")
	require.NoError(t, os.MkdirAll(bundle, 0o755))
	file := filepath.Join(bundle, "project.pbxproj")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	if cfg != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, ".pbxfmt.toml"), []byte(cfg), 0o644))
	}
	return project{root: root, bundle: bundle, file: file}
}

const nativeConfig = "[conversion]\nconverter = \"native\"\n"

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), append([]string{"--color=off"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_FormatsThenNoop(t *testing.T) {
	p := newProject(t, testkit.SampleProject, nativeConfig)

	code, stdout, stderr := runCLI(t, p.bundle)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "reformatted "+p.file)
	formatted := readFile(t, p.file)
	assert.NotEqual(t, testkit.SampleProject, formatted)

	code, stdout, stderr = runCLI(t, p.bundle)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
	assert.Equal(t, formatted, readFile(t, p.file))
}

func TestRun_Check(t *testing.T) {
	p := newProject(t, testkit.SampleProject, nativeConfig)

	code, stdout, _ := runCLI(t, "--check", p.file)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "would reformat "+p.file)
	assert.Equal(t, testkit.SampleProject, readFile(t, p.file))

	code, stdout, _ = runCLI(t, "--check", "--quiet", p.file)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)

	require.Equal(t, 0, func() int { c, _, _ := runCLI(t, p.file); return c }())
	code, _, _ = runCLI(t, "--check", p.file)
	assert.Equal(t, 0, code)
}

func TestRun_Stdout(t *testing.T) {
	p := newProject(t, testkit.SampleProject, nativeConfig)

	code, stdout, stderr := runCLI(t, "--stdout", p.bundle)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, testkit.SampleProject, readFile(t, p.file))

	code, _, stderr = runCLI(t, p.bundle)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, readFile(t, p.file), stdout)
}

func TestRun_UsageErrors(t *testing.T) {
	p := newProject(t, testkit.SampleProject, nativeConfig)
	tests := []struct {
		name string
		args []string
	}{
		{"no argument", nil},
		{"two arguments", []string{p.file, p.file}},
		{"check with stdout", []string{"--check", "--stdout", p.file}},
		{"missing path", []string{filepath.Join(p.root, "Missing.xcodeproj")}},
		{"bad color", []string{"--color=sometimes", p.file}},
		{"bad converter", []string{"--converter=xml", p.file}},
		{"bad trace level", []string{"--trace-level=loud", p.file}},
		{"bad trace format", []string{"--trace-format=xml", p.file}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := run(context.Background(), tt.args, &out, &errOut)
			assert.Equal(t, 1, code)
			assert.Contains(t, errOut.String(), "error[usage]")
		})
	}
	assert.Equal(t, testkit.SampleProject, readFile(t, p.file))
}

func TestRun_MalformedReportsCode(t *testing.T) {
	broken := strings.Replace(testkit.SampleProject, "\t\t\tbuildPhases = (\n\t\t\t\tAA000000000000000000000B /* Sources */,\n\t\t\t);\n", "", 1)
	require.NotEqual(t, testkit.SampleProject, broken)
	p := newProject(t, broken, nativeConfig)

	code, _, stderr := runCLI(t, p.bundle)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error[malformed-document]")
	assert.Contains(t, stderr, "buildPhases")
	assert.Equal(t, broken, readFile(t, p.file))
}

func TestRun_ConfigLayering(t *testing.T) {
	p := newProject(t, testkit.SampleProject, "[conversion]\nconverter = \"plutil\"\ntimeout = \"5s\"\n")
	t.Setenv("PATH", t.TempDir())

	code, _, stderr := runCLI(t, p.bundle)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error[conversion]")

	code, _, stderr = runCLI(t, "--converter=native", p.bundle)
	assert.Equal(t, 0, code, stderr)
}

func TestRun_ExplicitConfig(t *testing.T) {
	p := newProject(t, testkit.SampleProject, "")
	cfg := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(nativeConfig+"colour = \"red\"\n"), 0o644))

	code, _, stderr := runCLI(t, "--config", cfg, p.bundle)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown keys")

	require.NoError(t, os.WriteFile(cfg, []byte(nativeConfig), 0o644))
	code, _, stderr = runCLI(t, "--config", cfg, p.bundle)
	assert.Equal(t, 0, code, stderr)
}

func TestRun_CacheFlag(t *testing.T) {
	p := newProject(t, testkit.SampleProject, nativeConfig)
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)

	code, _, stderr := runCLI(t, "--cache", "--check", p.bundle)
	assert.Equal(t, 1, code, stderr)

	entries, err := os.ReadDir(filepath.Join(cacheDir, "pbxfmt", "docs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRun_CacheClear(t *testing.T) {
	p := newProject(t, testkit.SampleProject, nativeConfig)
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)
	docs := filepath.Join(cacheDir, "pbxfmt", "docs")

	code, _, stderr := runCLI(t, "--cache", "--check", p.bundle)
	require.Equal(t, 1, code, stderr)
	stale := filepath.Join(docs, "stale.mp")
	require.NoError(t, os.WriteFile(stale, []byte("junk"), 0o644))

	code, _, stderr = runCLI(t, "--cache-clear", "--check", "--timings", p.bundle)
	assert.Equal(t, 1, code, stderr)
	assert.Contains(t, stderr, "cache: "+filepath.Join(cacheDir, "pbxfmt"))
	assert.NoFileExists(t, stale)
	entries, err := os.ReadDir(docs)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRun_TimingsAndTrace(t *testing.T) {
	p := newProject(t, testkit.SampleProject, nativeConfig)

	code, _, stderr := runCLI(t, "--timings", "--trace=-", "--trace-level=phase", p.bundle)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "timings:")
	assert.Contains(t, stderr, "structure")
	assert.Contains(t, stderr, "→ format")
	assert.Contains(t, stderr, "← write")
	assert.NotContains(t, stderr, "cache:")
}

func TestRun_TraceToFile(t *testing.T) {
	p := newProject(t, testkit.SampleProject, nativeConfig)
	out := filepath.Join(t.TempDir(), "run.ndjson")

	code, _, stderr := runCLI(t, "--trace", out, "--check", p.bundle)
	assert.Equal(t, 1, code, stderr)
	assert.Empty(t, stderr)

	data := readFile(t, out)
	assert.Contains(t, data, `"name":"convert"`)
	assert.Contains(t, data, `"converter":"native"`)
}

func TestRun_FailureReport(t *testing.T) {
	broken := strings.Replace(testkit.SampleProject, "/* End PBXGroup section */", "/* End PBXFileReference section */", 1)
	p := newProject(t, broken, nativeConfig)

	code, _, stderr := runCLI(t, "--trace-level=error", p.bundle)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "trace: last events before failure in structure:")
	assert.Contains(t, stderr, "← structure (failed)")
	assert.Contains(t, stderr, "error[structure]")
	assert.NotContains(t, stderr, "← rewrite")
}

func TestRun_RepeatedRunsAreIndependent(t *testing.T) {
	broken := strings.Replace(testkit.SampleProject, "/* End PBXGroup section */", "/* End PBXFileReference section */", 1)
	bad := newProject(t, broken, nativeConfig)
	good := newProject(t, testkit.SampleProject, nativeConfig)

	code, _, stderr := runCLI(t, "--trace-level=error", bad.bundle)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "last events before failure")

	code, _, stderr = runCLI(t, good.bundle)
	assert.Equal(t, 0, code, stderr)
	assert.Empty(t, stderr)

	code, _, stderr = runCLI(t, bad.bundle)
	assert.Equal(t, 1, code)
	assert.NotContains(t, stderr, "trace:")
}

func TestSessionCloseRunsCleanupsOnce(t *testing.T) {
	var order []int
	s := &session{}
	s.cleanups = append(s.cleanups, func() { order = append(order, 1) }, func() { order = append(order, 2) })
	s.close()
	s.close()
	assert.Equal(t, []int{2, 1}, order)
}

func TestVersionCmd(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "pbxfmt "))

	code, stdout, _ = runCLI(t, "version", "--format", "json")
	require.Equal(t, 0, code)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info["version"])

	code, _, stderr := runCLI(t, "version", "--format", "yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error[usage]")
}
