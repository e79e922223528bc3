package main

import (
	"bufio"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/go-marc21/marc21"
)

// runSample implements `marc21 sample --size N FILE...`: reservoir-samples
// N records across the whole concatenated input stream using Algorithm R,
// so every record has an equal N/total chance of appearing in the output
// regardless of which file it came from or how many records precede it.
func runSample(args []string) error {
	fs := pflag.NewFlagSet("sample", pflag.ContinueOnError)
	g := registerGlobalFlags(fs)
	size := fs.Int("size", 0, "number of records to sample (required)")
	seed := fs.Int64("seed", 0, "deterministic random seed (0 picks a random one)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *size <= 0 {
		return errors.New("sample: --size must be a positive integer")
	}

	cfg, err := resolveConfig(fs, g)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Quiet)

	rng := rand.New(rand.NewSource(resolveSeed(*seed)))

	reservoir := make([][]byte, 0, *size)
	seen := 0
	err = eachRecord(filesOrStdin(fs.Args()), cfg, logger, func(_ string, _ int, rec *marc21.ByteRecord) error {
		raw := append([]byte(nil), rec.RawBytes...)
		if len(reservoir) < *size {
			reservoir = append(reservoir, raw)
		} else if j := rng.Intn(seen + 1); j < *size {
			reservoir[j] = raw
		}
		seen++
		return nil
	})
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	for _, raw := range reservoir {
		if _, err := out.Write(raw); err != nil {
			return err
		}
	}
	return out.Flush()
}

func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
