package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pbxfmt/internal/diag"
	"pbxfmt/internal/version"
)

func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show pbxfmt build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderVersion(cmd.OutOrStdout(), strings.ToLower(format))
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderVersion(out io.Writer, format string) error {
	switch format {
	case "pretty":
		_, err := fmt.Fprint(out, version.Pretty())
		return err
	case "json":
		s, err := version.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, s)
		return err
	default:
		return diag.Errorf(diag.UsageError, "unsupported format %q (must be pretty or json)", format)
	}
}
