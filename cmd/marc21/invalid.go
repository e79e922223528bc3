package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-marc21/marc21"
)

// runInvalid implements `marc21 invalid FILE...`: reports every record that
// fails to decode, printing its byte offset within the file and the parse
// error's message, then continues reading past the failure. Unlike every
// other subcommand it always continues past malformed records — that is
// the point of the command — regardless of --skip-invalid.
func runInvalid(args []string) error {
	fs := pflag.NewFlagSet("invalid", pflag.ContinueOnError)
	g := registerGlobalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	// invalid reports failures on stdout directly; its only use for the
	// global flags is validating them.
	if _, err := resolveConfig(fs, g); err != nil {
		return err
	}
	ctx := context.Background()

	for _, path := range filesOrStdin(fs.Args()) {
		if err := reportInvalid(ctx, path, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func reportInvalid(ctx context.Context, path string, out io.Writer) error {
	r, err := marc21.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	offset := 0
	for {
		rec, err := r.Next(ctx)
		if err != nil {
			var perr *marc21.ParseRecordError
			if errors.As(err, &perr) {
				fmt.Fprintf(out, "%s\t%d\t%s\n", path, offset+perr.Start, perr.Message)
				offset += len(perr.Raw())
				continue
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		if rec == nil {
			return nil
		}
		offset += len(rec.RawBytes)
	}
}
