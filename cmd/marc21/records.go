package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/go-marc21/marc21"
	"github.com/go-marc21/marc21/internal/config"
)

// recordVisitor is called once per successfully decoded record. path is
// the file it came from ("-" for standard input) and position is the
// record's 0-based index within that file, so parse errors can name the
// record position in the stream.
type recordVisitor func(path string, position int, rec *marc21.ByteRecord) error

// eachRecord opens every path in turn and decodes records from it in
// order, calling visit for each. A malformed record is skipped with a
// warning when cfg.SkipInvalid is set; otherwise decoding stops and the
// ParseRecordError is returned, annotated with the file and position.
func eachRecord(paths []string, cfg config.Config, logger *log.Logger, visit recordVisitor) error {
	ctx := context.Background()

	for _, path := range paths {
		if err := eachRecordInFile(ctx, path, cfg, logger, visit); err != nil {
			return err
		}
	}
	return nil
}

func eachRecordInFile(ctx context.Context, path string, cfg config.Config, logger *log.Logger, visit recordVisitor) error {
	r, err := marc21.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for position := 0; ; position++ {
		rec, err := r.Next(ctx)
		if err != nil {
			var perr *marc21.ParseRecordError
			if errors.As(err, &perr) {
				if cfg.SkipInvalid {
					logger.Warn("skipping malformed record", "file", path, "position", position, "error", perr)
					continue
				}
				return fmt.Errorf("%s: record %d: %w", path, position, perr)
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		if rec == nil {
			return nil
		}
		if err := visit(path, position, rec); err != nil {
			return err
		}
	}
}
