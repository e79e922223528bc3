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

// runSplit implements `marc21 split --matcher EXPR --out-true A --out-false
// B FILE...`: partitions every input record into one of two output files
// according to --matcher, writing each record byte-for-byte.
func runSplit(args []string) error {
	fs := pflag.NewFlagSet("split", pflag.ContinueOnError)
	g := registerGlobalFlags(fs)
	matcherExpr := fs.String("matcher", "", "record matcher expression (required)")
	outTrue := fs.String("out-true", "", "output path for matching records (required)")
	outFalse := fs.String("out-false", "", "output path for non-matching records (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *matcherExpr == "" || *outTrue == "" || *outFalse == "" {
		return errors.New("split: --matcher, --out-true and --out-false are all required")
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

	trueFile, err := os.Create(*outTrue)
	if err != nil {
		return err
	}
	defer trueFile.Close()
	falseFile, err := os.Create(*outFalse)
	if err != nil {
		return err
	}
	defer falseFile.Close()

	trueW := bufio.NewWriter(trueFile)
	falseW := bufio.NewWriter(falseFile)

	err = eachRecord(filesOrStdin(fs.Args()), cfg, logger, func(_ string, _ int, rec *marc21.ByteRecord) error {
		if rm.IsMatch(rec, opts) {
			return rec.WriteTo(trueW)
		}
		return rec.WriteTo(falseW)
	})
	if err != nil {
		return err
	}
	if err := trueW.Flush(); err != nil {
		return err
	}
	return falseW.Flush()
}
