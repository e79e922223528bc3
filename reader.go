// Copyright 2013 Thomas Emerson. All rights reserved.

package marc21

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Reader frames a byte stream into records at the record-separator boundary
// and transparently demultiplexes plain vs. gzip input (C6). It owns a
// reused internal buffer: callers must finish inspecting record N before
// calling Next again.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer
}

// NewReader wraps an already-open byte source.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Open resolves path the way the MARC 21 toolkit resolves input paths:
// "-" or "" reads standard input, a ".gz" suffix transparently
// decompresses, anything else is read verbatim.
func Open(path string) (*Reader, error) {
	if path == "-" || path == "" {
		return NewReader(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("marc21: %w", err)
	}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("marc21: %w", err)
		}
		return &Reader{br: bufio.NewReader(gz), closer: f}, nil
	}

	return &Reader{br: bufio.NewReader(f), closer: f}, nil
}

// Close releases any underlying file opened by Open. Readers constructed
// with NewReader own nothing and Close is a no-op.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Next reads and decodes the next record from the stream. It returns
// (nil, nil) at a clean end-of-stream. A partial record before EOF, or any
// malformed record, is reported as a *ParseRecordError carrying the
// incomplete/offending bytes; any other I/O failure is returned verbatim
// (wrapped).
func (r *Reader) Next(ctx context.Context) (*ByteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := r.br.ReadBytes(recordTerminator)
	if err != nil {
		if err == io.EOF {
			if len(buf) == 0 {
				return nil, nil
			}
			return nil, parseErrAt("unexpected end of input inside a record", len(buf), buf)
		}
		return nil, fmt.Errorf("marc21: %w", err)
	}

	return FromBytes(buf)
}
