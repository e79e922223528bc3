package main

import (
	"bufio"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-marc21/marc21"
)

// runConcat implements `marc21 concat FILE...`: writes every record from
// every input, in order, to stdout unchanged. It is the identity operation
// of the grammar: concat FILE... | count --matcher '<anything true>' equals
// count FILE... --matcher '<anything true>'.
func runConcat(args []string) error {
	fs := pflag.NewFlagSet("concat", pflag.ContinueOnError)
	g := registerGlobalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := resolveConfig(fs, g)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Quiet)

	out := bufio.NewWriter(os.Stdout)
	err = eachRecord(filesOrStdin(fs.Args()), cfg, logger, func(_ string, _ int, rec *marc21.ByteRecord) error {
		return rec.WriteTo(out)
	})
	if err != nil {
		return err
	}
	return out.Flush()
}
