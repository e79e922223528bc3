package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-marc21/marc21"
	"github.com/go-marc21/marc21/matcher"
)

// runFilter implements `marc21 filter --matcher EXPR FILE...`: writes every
// matching record to stdout byte-for-byte, unchanged, per the round-trip
// requirement on ByteRecord.WriteTo.
func runFilter(args []string) error {
	fs := pflag.NewFlagSet("filter", pflag.ContinueOnError)
	g := registerGlobalFlags(fs)
	matcherExpr := fs.String("matcher", "", "record matcher expression (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *matcherExpr == "" {
		return errors.New("filter: --matcher is required")
	}

	cfg, err := resolveConfig(fs, g)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Quiet)

	rm, err := matcher.ParseRecordMatcher(*matcherExpr)
	if err != nil {
		return fmt.Errorf("--matcher: %w", err)
	}
	opts := matchOptions(cfg)

	out := bufio.NewWriter(os.Stdout)
	err = eachRecord(filesOrStdin(fs.Args()), cfg, logger, func(_ string, _ int, rec *marc21.ByteRecord) error {
		if rm.IsMatch(rec, opts) {
			return rec.WriteTo(out)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return out.Flush()
}
