package plist

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"pbxfmt/internal/diag"
)

// PlutilConverter runs "plutil -convert json" as a child process.
type PlutilConverter struct {
	Path string
}

// Name implements Converter.
func (p *PlutilConverter) Name() string { return Plutil }

// Convert pipes data through plutil and decodes its JSON output.
func (p *PlutilConverter) Convert(ctx context.Context, data []byte) (any, error) {
	if ctx.Err() != nil {
		return nil, contextError(ctx, Plutil)
	}
	// #nosec G204 -- the binary path comes from exec.LookPath or the caller
	cmd := exec.CommandContext(ctx, p.Path, "-convert", "json", "-o", "-", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, contextError(ctx, Plutil)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			return nil, diag.Wrap(diag.ConversionError, err, "plutil could not convert the project file")
		}
		return nil, diag.Wrap(diag.ConversionError, err, "plutil could not convert the project file: %s", msg)
	}

	var doc any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		return nil, diag.Wrap(diag.ConversionError, err, "plutil produced invalid JSON")
	}
	return doc, nil
}
