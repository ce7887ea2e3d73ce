// Package plist converts raw project file bytes into a generic document:
// dictionaries become map[string]any, arrays []any and scalars string.
package plist

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"pbxfmt/internal/diag"
)

// Converter names accepted by Select.
const (
	Auto   = "auto"
	Plutil = "plutil"
	Native = "native"
)

// Converter turns property-list bytes into a generic document.
type Converter interface {
	Name() string
	Convert(ctx context.Context, data []byte) (any, error)
}

// Select returns the converter registered under name. Auto prefers the
// system plutil when it is on PATH.
func Select(name string) (Converter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Auto:
		if path, err := exec.LookPath("plutil"); err == nil {
			return &PlutilConverter{Path: path}, nil
		}
		return NativeConverter{}, nil
	case Plutil:
		path, err := exec.LookPath("plutil")
		if err != nil {
			return nil, diag.Wrap(diag.ConversionError, err, "plutil not found on PATH; install Xcode command line tools or use --converter=native")
		}
		return &PlutilConverter{Path: path}, nil
	case Native:
		return NativeConverter{}, nil
	default:
		return nil, diag.Errorf(diag.UsageError, "unknown converter %q (want auto, plutil or native)", name)
	}
}

// contextError maps an expired or cancelled context to a diagnostic.
func contextError(ctx context.Context, converter string) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return diag.Wrap(diag.ConversionTimeout, err, "%s conversion did not finish in time", converter)
	}
	return diag.Wrap(diag.ConversionError, err, "%s conversion interrupted", converter)
}
