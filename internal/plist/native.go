package plist

import (
	"context"

	hplist "howett.net/plist"

	"pbxfmt/internal/diag"
)

// NativeConverter parses the property list in process.
type NativeConverter struct{}

// Name implements Converter.
func (NativeConverter) Name() string { return Native }

type outcome struct {
	doc any
	err error
}

// Convert decodes data with howett.net/plist. The parse runs on its own
// goroutine so that ctx bounds the wait.
func (NativeConverter) Convert(ctx context.Context, data []byte) (any, error) {
	if ctx.Err() != nil {
		return nil, contextError(ctx, Native)
	}
	done := make(chan outcome, 1)
	go func() {
		var doc any
		_, err := hplist.Unmarshal(data, &doc)
		done <- outcome{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, contextError(ctx, Native)
	case o := <-done:
		if o.err != nil {
			return nil, diag.Wrap(diag.ConversionError, o.err, "could not parse the project file as a property list")
		}
		return o.doc, nil
	}
}
