package main

import (
	"bufio"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-marc21/marc21"
)

// runPrint implements `marc21 print FILE...`: renders every record in the
// leader-then-fields human-readable form produced by ByteRecord.String,
// separated by a blank line.
func runPrint(args []string) error {
	fs := pflag.NewFlagSet("print", pflag.ContinueOnError)
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
		if _, err := out.WriteString(rec.String()); err != nil {
			return err
		}
		_, err := out.WriteString("\n")
		return err
	})
	if err != nil {
		return err
	}
	return out.Flush()
}
