// Package config loads .pbxfmt.toml files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"pbxfmt/internal/diag"
)

// FileName is the configuration file looked up next to the project.
const FileName = ".pbxfmt.toml"

// DefaultTimeout bounds document conversion.
const DefaultTimeout = 10 * time.Second

// Config is the decoded configuration file.
type Config struct {
	Conversion Conversion `toml:"conversion"`
	Cache      Cache      `toml:"cache"`
	Sort       Sort       `toml:"sort"`
	Rewrite    Rewrite    `toml:"rewrite"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `toml:"-"`
}

// Conversion configures the plist converter.
type Conversion struct {
	Converter string `toml:"converter"`
	Timeout   string `toml:"timeout"`
}

// Cache configures the converted-document cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Sort configures sibling ordering.
type Sort struct {
	LeadingKinds   []string `toml:"leading_kinds"`
	PreserveArrays []string `toml:"preserve_arrays"`
}

// Rewrite configures identifier substitution.
type Rewrite struct {
	IdentifierFields []string `toml:"identifier_fields"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Conversion: Conversion{Converter: "auto", Timeout: DefaultTimeout.String()},
		Sort:       Sort{LeadingKinds: []string{"PBXGroup"}},
	}
}

// TimeoutDuration parses Conversion.Timeout.
func (c Config) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(c.Conversion.Timeout) == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Conversion.Timeout)
	if err != nil {
		return 0, diag.Wrap(diag.UsageError, err, "%s: invalid [conversion].timeout %q", c.source(), c.Conversion.Timeout)
	}
	if d <= 0 {
		return 0, diag.Errorf(diag.UsageError, "%s: [conversion].timeout must be positive, got %s", c.source(), d)
	}
	return d, nil
}

func (c Config) source() string {
	if c.Path == "" {
		return "config"
	}
	return c.Path
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest configuration above startDir, or Default when
// there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, diag.Wrap(diag.IOError, err, "config lookup failed")
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes a configuration file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, diag.Wrap(diag.UsageError, err, "config file %s not found", path)
		}
		return Config{}, diag.Wrap(diag.UsageError, err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, diag.Errorf(diag.UsageError, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Conversion.Converter)) {
	case "", "auto", "plutil", "native":
	default:
		return diag.Errorf(diag.UsageError, "%s: [conversion].converter must be auto, plutil or native, got %q", c.source(), c.Conversion.Converter)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	for _, k := range c.Sort.LeadingKinds {
		if strings.TrimSpace(k) == "" {
			return diag.Errorf(diag.UsageError, "%s: [sort].leading_kinds contains an empty kind", c.source())
		}
	}
	return nil
}
