package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pbxfmt/internal/cache"
	"pbxfmt/internal/config"
	"pbxfmt/internal/diag"
	"pbxfmt/internal/driver"
	"pbxfmt/internal/observ"
	"pbxfmt/internal/plist"
	"pbxfmt/internal/rewrite"
)

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "report whether the file needs formatting without writing it")
	cmd.Flags().Bool("stdout", false, "print the formatted file to stdout instead of rewriting it")
	cmd.Flags().String("converter", "", "plist converter (auto|plutil|native)")
	cmd.Flags().Duration("timeout", 0, "conversion timeout (default from config, 10s)")
	cmd.Flags().Bool("cache", false, "cache converted documents")
	cmd.Flags().Bool("cache-clear", false, "drop every cached document before formatting (implies --cache)")
	cmd.Flags().Duration("trace-heartbeat", 0, "trace a heartbeat at this interval while the converter runs (0 = off)")
	cmd.Flags().String("config", "", "configuration file (default: nearest "+config.FileName+")")
}

func runFormat(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	check, err := flags.GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := flags.GetBool("stdout")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return diag.New(diag.UsageError, "--stdout cannot be used with --check")
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return err
	}
	clearCache, err := flags.GetBool("cache-clear")
	if err != nil {
		return err
	}
	heartbeat, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return err
	}

	path, err := driver.Locate(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, path)
	if err != nil {
		return err
	}
	if clearCache {
		cfg.Cache.Enabled = true
	}
	opts, err := formatOptions(cfg)
	if err != nil {
		return err
	}
	if clearCache {
		if err := opts.Cache.DropAll(); err != nil {
			return diag.Wrap(diag.IOError, err, "cannot clear cache %s", opts.Cache.Dir())
		}
	}
	opts.Check = check
	opts.Stdout = writeToStdout
	opts.Heartbeat = heartbeat
	if timings {
		opts.Timer = observ.NewTimer()
	}

	res, err := driver.Format(cmd.Context(), path, opts)
	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
		if dir := opts.Cache.Dir(); dir != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "cache: %s\n", dir)
		}
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case writeToStdout:
		if _, err := out.Write(res.Formatted); err != nil {
			return diag.Wrap(diag.IOError, err, "cannot write to stdout")
		}
	case check:
		if res.Changed {
			if !quiet {
				fmt.Fprintf(out, "%s %s\n", color.YellowString("would reformat"), res.Path)
			}
			return &exitError{code: 1}
		}
	case res.Written && !quiet:
		fmt.Fprintf(out, "%s %s\n", color.GreenString("reformatted"), res.Path)
	}
	return nil
}

// loadConfig layers the configuration file and command-line flags over the defaults.
func loadConfig(cmd *cobra.Command, projectFile string) (config.Config, error) {
	flags := cmd.Flags()
	explicit, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	var cfg config.Config
	if explicit != "" {
		cfg, err = config.Load(explicit)
	} else {
		cfg, err = config.Discover(filepath.Dir(projectFile))
	}
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("converter") {
		if cfg.Conversion.Converter, err = flags.GetString("converter"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("timeout") {
		d, err := flags.GetDuration("timeout")
		if err != nil {
			return config.Config{}, err
		}
		cfg.Conversion.Timeout = d.String()
	}
	if flags.Changed("cache") {
		if cfg.Cache.Enabled, err = flags.GetBool("cache"); err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func formatOptions(cfg config.Config) (driver.FormatOptions, error) {
	conv, err := plist.Select(cfg.Conversion.Converter)
	if err != nil {
		return driver.FormatOptions{}, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return driver.FormatOptions{}, err
	}
	opts := driver.FormatOptions{
		Converter: conv,
		Timeout:   timeout,
		Rewrite: rewrite.Options{
			IdentifierFields: cfg.Rewrite.IdentifierFields,
			LeadingKinds:     cfg.Sort.LeadingKinds,
			PreserveArrays:   cfg.Sort.PreserveArrays,
		},
	}
	if cfg.Cache.Enabled {
		c, err := openCache(cfg.Cache.Dir)
		if err != nil {
			return driver.FormatOptions{}, err
		}
		opts.Cache = c
	}
	return opts, nil
}

func openCache(dir string) (*cache.Cache, error) {
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir("pbxfmt"); err != nil {
			return nil, diag.Wrap(diag.IOError, err, "cannot determine cache directory")
		}
	}
	c, err := cache.Open(dir)
	if err != nil {
		return nil, diag.Wrap(diag.IOError, err, "cannot open cache %s", dir)
	}
	return c, nil
}
