package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-marc21/marc21"
)

// runHash implements `marc21 hash FILE...`: prints a hex-encoded SHA-256
// digest per record, computed over its raw bytes, so two byte-identical
// records hash identically regardless of which file they came from.
func runHash(args []string) error {
	fs := pflag.NewFlagSet("hash", pflag.ContinueOnError)
	g := registerGlobalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := resolveConfig(fs, g)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Quiet)

	err = eachRecord(filesOrStdin(fs.Args()), cfg, logger, func(_ string, _ int, rec *marc21.ByteRecord) error {
		sum := sha256.Sum256(rec.RawBytes)
		_, err := fmt.Fprintln(os.Stdout, hex.EncodeToString(sum[:]))
		return err
	})
	return err
}
