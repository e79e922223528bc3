// Package config loads the CLI's ambient configuration: an optional TOML
// file, overridden by environment variables, in turn overridden by
// command-line flags. It follows holocm-holo-build's pattern of decoding
// straight into an exported struct with BurntSushi/toml so field-name
// typos in the file surface as decode errors rather than silent no-ops.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config carries every knob the marc21 CLI layers underneath its own
// flags: the matcher's similarity threshold and the reader's tolerance for
// malformed records.
type Config struct {
	StrsimThreshold float64
	SkipInvalid     bool
	Quiet           bool
}

// Default returns the toolkit's documented defaults: a similarity
// threshold of 0.8, strict (non-skipping) reading, and normal verbosity.
func Default() Config {
	return Config{StrsimThreshold: 0.8}
}

// fileConfig mirrors the on-disk TOML layout. Its field names are
// capitalised for toml's exported-field requirement; the file itself uses
// lowercase snake_case keys, matched by the `toml` struct tags.
type fileConfig struct {
	Match struct {
		StrsimThreshold *float64 `toml:"strsim_threshold"`
	} `toml:"match"`
	Reader struct {
		SkipInvalid *bool `toml:"skip_invalid"`
		Quiet       *bool `toml:"quiet"`
	} `toml:"reader"`
}

// Load builds a Config starting from Default, layering in path's TOML
// contents (if path is non-empty) and then the MARC21_* environment
// variables. Command-line flags are expected to override the result
// afterward: the CLI applies only the flags that were explicitly set on
// top of this value.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		var file fileConfig
		md, err := toml.DecodeFile(path, &file)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config: unknown key %q", undecoded[0].String())
		}
		if file.Match.StrsimThreshold != nil {
			cfg.StrsimThreshold = *file.Match.StrsimThreshold
		}
		if file.Reader.SkipInvalid != nil {
			cfg.SkipInvalid = *file.Reader.SkipInvalid
		}
		if file.Reader.Quiet != nil {
			cfg.Quiet = *file.Reader.Quiet
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("MARC21_STRSIM_THRESHOLD"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: MARC21_STRSIM_THRESHOLD: %w", err)
		}
		cfg.StrsimThreshold = f
	}
	if v, ok := os.LookupEnv("MARC21_SKIP_INVALID"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: MARC21_SKIP_INVALID: %w", err)
		}
		cfg.SkipInvalid = b
	}
	if v, ok := os.LookupEnv("MARC21_QUIET"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: MARC21_QUIET: %w", err)
		}
		cfg.Quiet = b
	}
	return nil
}
