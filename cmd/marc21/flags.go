package main

import (
	"github.com/spf13/pflag"

	"github.com/go-marc21/marc21/internal/config"
	"github.com/go-marc21/marc21/matcher"
)

// globals holds the flag set shared by every subcommand: --quiet,
// --skip-invalid, --strsim-threshold, --config.
type globals struct {
	quiet           bool
	skipInvalid     bool
	strsimThreshold float64
	configPath      string
}

func registerGlobalFlags(fs *pflag.FlagSet) *globals {
	g := &globals{}
	fs.BoolVar(&g.quiet, "quiet", false, "suppress operator-facing diagnostics")
	fs.BoolVar(&g.skipInvalid, "skip-invalid", false, "skip malformed records instead of aborting")
	fs.Float64Var(&g.strsimThreshold, "strsim-threshold", 0, "similarity threshold for the =*/!* operators")
	fs.StringVar(&g.configPath, "config", "", "TOML configuration file")
	return g
}

// resolveConfig loads internal/config's layered Config (TOML, then
// environment) and then applies any explicitly-passed flags on top, so
// flags always win.
func resolveConfig(fs *pflag.FlagSet, g *globals) (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if fs.Changed("quiet") {
		cfg.Quiet = g.quiet
	}
	if fs.Changed("skip-invalid") {
		cfg.SkipInvalid = g.skipInvalid
	}
	if fs.Changed("strsim-threshold") {
		cfg.StrsimThreshold = g.strsimThreshold
	}
	return cfg, nil
}

func matchOptions(cfg config.Config) matcher.MatchOptions {
	return matcher.MatchOptions{StrsimThreshold: cfg.StrsimThreshold}
}

// filesOrStdin returns args verbatim, or a single "-" (standard input) if
// no FILE operands were given.
func filesOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
