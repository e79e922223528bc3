// Copyright 2013 Thomas Emerson. All rights reserved.

package marc21

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-marc21/marc21/internal/marctest"
)

func simpleRecord(controlValue string) []byte {
	return marctest.Build(marctest.Leader{}, []marctest.Field{
		{Tag: "001", Value: controlValue},
	})
}

func TestReaderFramesConcatenatedRecords(t *testing.T) {
	a, b := simpleRecord("1"), simpleRecord("2")
	stream := append(append([]byte{}, a...), b...)

	r := NewReader(bytes.NewReader(stream))
	ctx := context.Background()

	first, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if first == nil {
		t.Fatal("expected a first record, got end-of-stream")
	}

	second, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if second == nil {
		t.Fatal("expected a second record, got end-of-stream")
	}

	third, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("third Next: %v", err)
	}
	if third != nil {
		t.Errorf("expected end-of-stream after two records")
	}
}

func TestReaderEmptyStreamIsCleanEOF(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	rec, err := r.Next(context.Background())
	if err != nil {
		t.Fatalf("Next on empty stream: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record on an empty stream")
	}
}

func TestReaderPartialRecordIsParseError(t *testing.T) {
	full := simpleRecord("1")
	partial := full[:len(full)-5]
	r := NewReader(bytes.NewReader(partial))

	_, err := r.Next(context.Background())
	if err == nil {
		t.Fatal("expected an error for a partial trailing record")
	}
	var perr *ParseRecordError
	if !asParseRecordError(err, &perr) {
		t.Errorf("expected a *ParseRecordError, got %T: %v", err, err)
	}
}

func TestReaderContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewReader(bytes.NewReader(simpleRecord("1")))
	if _, err := r.Next(ctx); err == nil {
		t.Errorf("expected an error from a cancelled context")
	}
}

func asParseRecordError(err error, target **ParseRecordError) bool {
	if pe, ok := err.(*ParseRecordError); ok {
		*target = pe
		return true
	}
	return false
}
