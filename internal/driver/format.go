package driver

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"pbxfmt/internal/cache"
	"pbxfmt/internal/config"
	"pbxfmt/internal/diag"
	"pbxfmt/internal/lines"
	"pbxfmt/internal/model"
	"pbxfmt/internal/observ"
	"pbxfmt/internal/plist"
	"pbxfmt/internal/resolve"
	"pbxfmt/internal/rewrite"
	"pbxfmt/internal/source"
	"pbxfmt/internal/trace"
)

// FormatOptions configures one formatting run.
type FormatOptions struct {
	// Check reports whether the file would change without writing it.
	Check bool
	// Stdout returns the formatted content without writing it.
	Stdout bool
	// Converter turns the raw file into a document; nil selects plist.Auto.
	Converter plist.Converter
	// Timeout bounds conversion; zero means config.DefaultTimeout.
	Timeout time.Duration
	// Heartbeat is the interval of trace heartbeats while a converter runs;
	// zero disables them.
	Heartbeat time.Duration
	// Cache stores converted documents; nil disables caching.
	Cache   *cache.Cache
	Rewrite rewrite.Options
	// Timer receives per-phase timings; nil disables them.
	Timer *observ.Timer
}

// FormatResult captures the result of formatting a project file.
type FormatResult struct {
	Path      string
	Changed   bool
	Written   bool
	Formatted []byte
	Stats     Stats
}

// Stats describes what a run saw.
type Stats struct {
	Objects       int
	Substitutions int
	Lines         int
	Converter     string
	CacheHit      bool
}

// Format canonicalizes the project named by arg. The file is rewritten only
// when the canonical text differs and neither Check nor Stdout is set; any
// failure leaves it untouched.
func Format(ctx context.Context, arg string, opts FormatOptions) (*FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, run := trace.Start(ctx, trace.ScopeDriver, "format")
	res, err := format(ctx, arg, opts)
	if err != nil {
		run.Set("code", diag.CodeOf(err).String())
		run.End(err)
		return nil, err
	}
	run.Set("path", res.Path)
	run.Set("changed", strconv.FormatBool(res.Changed))
	run.End(nil)
	return res, nil
}

func format(ctx context.Context, arg string, opts FormatOptions) (*FormatResult, error) {
	path, err := Locate(arg)
	if err != nil {
		return nil, err
	}

	var file *source.File
	err = phase(ctx, opts.Timer, "read", func(_ context.Context, span *trace.Span) error {
		f, err := source.Load(path)
		if err != nil {
			return diag.Wrap(diag.IOError, err, "cannot read %s", path)
		}
		file = f
		span.Set("bytes", itoa(len(f.Content)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	formatted, stats, err := Canonicalize(ctx, file, opts)
	if err != nil {
		return nil, err
	}

	res := &FormatResult{
		Path:    path,
		Changed: !bytes.Equal(file.Content, formatted),
		Stats:   stats,
	}
	switch {
	case opts.Stdout:
		res.Formatted = formatted
	case opts.Check:
	case res.Changed:
		err = phase(ctx, opts.Timer, "write", func(_ context.Context, span *trace.Span) error {
			span.Set("bytes", itoa(len(formatted)))
			return WriteAtomic(path, formatted)
		})
		if err != nil {
			return nil, err
		}
		res.Written = true
	}
	return res, nil
}

// Canonicalize runs the in-memory pipeline over a loaded file and returns the
// canonical bytes. It never touches the filesystem except through opts.Cache.
func Canonicalize(ctx context.Context, file *source.File, opts FormatOptions) ([]byte, Stats, error) {
	p := &pipeline{opts: opts, file: file}
	p.body, p.prefix = stripBOM(file)

	steps := []struct {
		name string
		fn   func(context.Context, *trace.Span) error
	}{
		{"convert", p.convert},
		{"load", p.load},
		{"resolve", p.resolve},
		{"structure", p.structure},
		{"rewrite", p.rewrite},
	}
	for _, step := range steps {
		if err := phase(ctx, opts.Timer, step.name, step.fn); err != nil {
			return nil, p.stats, err
		}
	}

	out := source.JoinLines(p.out)
	if len(p.prefix) > 0 {
		out = append(append([]byte(nil), p.prefix...), out...)
	}
	return out, p.stats, nil
}

// phase runs fn inside a trace span and a timer phase.
func phase(ctx context.Context, timer *observ.Timer, name string, fn func(context.Context, *trace.Span) error) error {
	idx := timer.Begin(name)
	ctx, span := trace.Start(ctx, trace.ScopePhase, name)
	err := fn(ctx, span)
	note := ""
	if err != nil {
		note = trace.Failed
		span.Set("code", diag.CodeOf(err).String())
	}
	span.End(err)
	timer.End(idx, note)
	return err
}

type pipeline struct {
	opts   FormatOptions
	file   *source.File
	body   []byte
	prefix []byte

	doc   any
	table *model.Table
	res   *resolve.Result
	nodes []*lines.Node
	out   []string
	stats Stats
}

func (p *pipeline) convert(ctx context.Context, span *trace.Span) error {
	if dir := p.opts.Cache.Dir(); dir != "" {
		span.Set("cache", dir)
	}
	if doc, ok, err := p.opts.Cache.Get(p.file.Hash); err != nil {
		trace.Note(ctx, trace.ScopeSection, "cache", "unreadable entry: "+err.Error())
	} else if ok {
		p.doc = doc
		p.stats.CacheHit = true
		p.stats.Converter = "cache"
		span.Set("converter", p.stats.Converter)
		return nil
	}

	conv := p.opts.Converter
	if conv == nil {
		var err error
		if conv, err = plist.Select(plist.Auto); err != nil {
			return err
		}
	}
	span.Set("converter", conv.Name())
	timeout := p.opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stop := trace.Watch(cctx, p.opts.Heartbeat, "convert:"+conv.Name())
	doc, err := conv.Convert(cctx, p.body)
	stop()
	if err != nil {
		return err
	}
	p.doc = doc
	p.stats.Converter = conv.Name()

	if err := p.opts.Cache.Put(p.file.Hash, conv.Name(), doc); err != nil {
		trace.Note(ctx, trace.ScopeSection, "cache", "store failed: "+err.Error())
	}
	return nil
}

func (p *pipeline) load(_ context.Context, span *trace.Span) error {
	table, err := model.Load(p.doc)
	if err != nil {
		return err
	}
	p.table = table
	p.stats.Objects = len(table.Objects)
	span.Set("objects", itoa(p.stats.Objects))
	return nil
}

func (p *pipeline) resolve(ctx context.Context, span *trace.Span) error {
	res, err := resolve.Resolve(p.table)
	if err != nil {
		return err
	}
	p.res = res
	p.stats.Substitutions = len(res.Substitutions)
	span.Set("substitutions", itoa(p.stats.Substitutions))

	if trace.Enabled(ctx, trace.ScopeObject) {
		for _, id := range p.table.IDs() {
			e := res.Paths[id]
			trace.Note(ctx, trace.ScopeObject, e.Isa, id+" -> "+e.ID+" "+e.Path)
		}
	}
	return nil
}

func (p *pipeline) structure(ctx context.Context, span *trace.Span) error {
	text := p.file.Lines
	if len(p.prefix) > 0 {
		text = source.SplitLines(p.body)
	}
	nodes, err := lines.NewStructurer().Structure(text)
	if err != nil {
		return err
	}
	p.nodes = nodes
	p.stats.Lines = len(text)
	span.Set("lines", itoa(p.stats.Lines))
	endings := "lf"
	if p.file.Flags&source.FileHasCRLF != 0 {
		endings = "crlf"
	}
	span.Set("endings", endings)

	for _, n := range sections(nodes) {
		trace.Note(ctx, trace.ScopeSection, "section", n.Name)
	}
	return nil
}

func (p *pipeline) rewrite(_ context.Context, _ *trace.Span) error {
	out, err := rewrite.New(p.res, p.opts.Rewrite).Rewrite(p.nodes)
	if err != nil {
		return err
	}
	p.out = out
	return nil
}

// sections returns every Section node in document order.
func sections(nodes []*lines.Node) []*lines.Node {
	var out []*lines.Node
	for _, n := range nodes {
		if n.Kind == lines.Section {
			out = append(out, n)
		}
		if n.IsGroup() {
			out = append(out, sections(n.Children)...)
		}
	}
	return out
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripBOM splits a leading byte order mark off the file content.
func stripBOM(f *source.File) (body, prefix []byte) {
	if f.Flags&source.FileHadBOM != 0 && bytes.HasPrefix(f.Content, utf8BOM) {
		return f.Content[len(utf8BOM):], utf8BOM
	}
	return f.Content, nil
}
