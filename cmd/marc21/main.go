// Command marc21 is a thin CLI front-end over the marc21 decoder and
// matcher packages: count, filter, concat, sample, split, print, hash, and
// invalid each wrap a handful of core calls with flag parsing and
// operator-facing diagnostics. None of the matching or decoding logic
// lives here — see the marc21 and marc21/matcher packages for that.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/log"
)

var subcommands = map[string]func([]string) error{
	"count":   runCount,
	"filter":  runFilter,
	"concat":  runConcat,
	"sample":  runSample,
	"split":   runSplit,
	"print":   runPrint,
	"hash":    runHash,
	"invalid": runInvalid,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	name := os.Args[1]
	run, ok := subcommands[name]
	if !ok {
		if name == "-h" || name == "--help" {
			printUsage()
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: unknown subcommand %q\n", name)
		printUsage()
		os.Exit(2)
	}

	if err := run(os.Args[2:]); err != nil {
		fail(err)
	}
}

// fail reports a fatal error and exits: a broken downstream
// pipe (e.g. `marc21 print foo.mrc | head`) exits cleanly, every other
// error prints "error: <message>" to stderr and exits non-zero.
func fail(err error) {
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: marc21 <command> [flags] FILE...

commands:
  count    [--matcher EXPR] FILE...
  filter   --matcher EXPR FILE...
  concat   FILE...
  sample   --size N FILE...
  split    --matcher EXPR --out-true A --out-false B FILE...
  print    FILE...
  hash     FILE...
  invalid  FILE...

global flags:
  --quiet                 suppress operator-facing diagnostics
  --skip-invalid          skip malformed records instead of aborting
  --strsim-threshold N    similarity threshold for the =*/!* operators (default 0.8)
  --config PATH           TOML configuration file`)
}

// newLogger builds the operator-facing logger used for diagnostics like
// skipped-record warnings. --quiet routes it to
// io.Discard rather than suppressing it level-by-level, so a quiet run
// never depends on which levels a future diagnostic happens to log at.
func newLogger(quiet bool) *log.Logger {
	if quiet {
		return log.New(io.Discard)
	}
	return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
}
