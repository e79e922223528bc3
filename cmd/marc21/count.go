package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-marc21/marc21"
	"github.com/go-marc21/marc21/matcher"
)

// runCount implements `marc21 count [--matcher EXPR] FILE...`: prints the
// number of records that satisfy --matcher, or every record if it is
// omitted.
func runCount(args []string) error {
	fs := pflag.NewFlagSet("count", pflag.ContinueOnError)
	g := registerGlobalFlags(fs)
	matcherExpr := fs.String("matcher", "", "record matcher expression")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := resolveConfig(fs, g)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Quiet)

	var rm matcher.RecordMatcher
	if *matcherExpr != "" {
		rm, err = matcher.ParseRecordMatcher(*matcherExpr)
		if err != nil {
			return fmt.Errorf("--matcher: %w", err)
		}
	}
	opts := matchOptions(cfg)

	count := 0
	err = eachRecord(filesOrStdin(fs.Args()), cfg, logger, func(_ string, _ int, rec *marc21.ByteRecord) error {
		if rm == nil || rm.IsMatch(rec, opts) {
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, count)
	return nil
}
