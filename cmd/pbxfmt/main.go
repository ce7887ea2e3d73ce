package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pbxfmt/internal/diag"
	"pbxfmt/internal/trace"
	"pbxfmt/internal/version"
)

// exitError ends the process with code after its message, if any, was printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// session owns what one invocation sets up and must release.
type session struct {
	cleanups []func()
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "pbxfmt [flags] <path>",
		Short: "Canonicalize Xcode project files",
		Long: `pbxfmt rewrites an Xcode project.pbxproj so that equivalent projects
serialize identically: object identifiers become content-addressed and sibling
entries are sorted. Pass the .xcodeproj bundle or the project.pbxproj itself.`,
		Args:              exactlyOnePath,
		RunE:              runFormat,
		PersistentPreRunE: s.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version.Version,
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show per-phase timing information")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr); without it events are only reported on failure")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-keep", trace.DefaultKeep, "events kept for the failure report when --trace is not set")

	addFormatFlags(root)
	root.AddCommand(newVersionCmd())
	return root
}

// exactlyOnePath wraps cobra.ExactArgs(1) into a usage diagnostic.
func exactlyOnePath(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return diag.Wrap(diag.UsageError, err, "usage: %s", cmd.UseLine())
	}
	return nil
}

// setup applies global flags before any command runs.
func (s *session) setup(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	if err := applyColorMode(mode); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	s.cleanups = append(s.cleanups, cleanup)
	return nil
}

func (s *session) close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

func applyColorMode(mode string) error {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stderr)
	default:
		return diag.Errorf(diag.UsageError, "invalid --color %q (expected: auto|on|off)", mode)
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	s := &session{}
	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	var exit *exitError
	isExit := errors.As(err, &exit)
	if err != nil && !isExit {
		reportTrace(root, stderr)
	}
	s.close()
	switch {
	case err == nil:
		return 0
	case isExit:
		return exit.code
	}
	printError(stderr, err)
	return 1
}

func printError(w io.Writer, err error) {
	code := diag.CodeOf(err)
	if code == diag.UnknownCode {
		code = diag.UsageError
	}
	label := color.New(color.FgRed, color.Bold).Sprintf("error[%s]", code)
	fmt.Fprintf(w, "%s: %v\n", label, err)
}

// reportTrace writes the retained trace of a failed run to w.
func reportTrace(cmd *cobra.Command, w io.Writer) {
	ctx := cmd.Context()
	if ctx == nil {
		return
	}
	if err := trace.Report(trace.FromContext(ctx), w); err != nil {
		fmt.Fprintf(w, "trace: report error: %v\n", err)
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
