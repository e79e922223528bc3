// Copyright 2013 Thomas Emerson. All rights reserved.

// Package marc21 implements a zero-copy reader for MARC-21 bibliographic
// records: a length-prefixed, directory-indexed binary container. A
// decoded ByteRecord borrows every byte slice from the input buffer and
// retains the buffer itself, so records re-emit byte-for-byte.
package marc21

import "strings"

// ByteRecord is a MARC 21 record view borrowed from an input buffer (C5).
// It retains the entire input as RawBytes so it can be re-emitted
// byte-for-byte; every other field borrows a sub-slice of that buffer.
type ByteRecord struct {
	Leader    Leader
	Directory Directory
	Fields    []Field
	RawBytes  []byte
}

// FromBytes decodes a single MARC 21 record from data. data is retained by
// the returned ByteRecord (zero-copy): callers must not mutate it for as
// long as the record is in use.
func FromBytes(data []byte) (*ByteRecord, error) {
	leader, err := decodeLeader(data)
	if err != nil {
		return nil, err
	}
	if leader.Length <= leader.BaseAddress+1 {
		return nil, parseErrAt("leader length must exceed base address + 1", 0, data)
	}

	directory, pos, err := decodeDirectory(data, leaderSize)
	if err != nil {
		return nil, err
	}

	payloadLen := int(leader.Length) - int(leader.BaseAddress) - 1
	if payloadLen < 0 || pos+payloadLen > len(data) {
		return nil, parseErrAt("truncated payload", pos, data)
	}
	payload := data[pos : pos+payloadLen]

	terminatorPos := pos + payloadLen
	if terminatorPos >= len(data) || data[terminatorPos] != recordTerminator {
		return nil, parseErrAt("record must end with a record terminator", terminatorPos, data)
	}

	fields := make([]Field, 0, len(directory.Entries))
	cursor := 0
	for _, entry := range directory.Entries {
		field, next, err := decodeField(payload, cursor, entry)
		if err != nil {
			// Field errors are reported against the payload slice; rebase
			// them onto the whole record buffer.
			if perr, ok := err.(*ParseRecordError); ok {
				perr.Start += pos
				perr.End += pos
				perr.Data = data
			}
			return nil, err
		}
		fields = append(fields, field)
		cursor = next
	}

	return &ByteRecord{
		Leader:    leader,
		Directory: directory,
		Fields:    fields,
		RawBytes:  data,
	}, nil
}

// GetFields returns every field whose tag equals tag, in directory order.
func (r *ByteRecord) GetFields(tag Tag) []Field {
	var out []Field
	for _, f := range r.Fields {
		if f.Tag() == tag {
			out = append(out, f)
		}
	}
	return out
}

// Validate reports a non-nil error if any field contains invalid UTF-8.
func (r *ByteRecord) Validate() error {
	for _, f := range r.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo writes the record's original bytes unchanged, satisfying the
// round-trip requirement: decoding then writing yields the input verbatim.
func (r *ByteRecord) WriteTo(w interface{ Write([]byte) (int, error) }) error {
	_, err := w.Write(r.RawBytes)
	return err
}

func (r *ByteRecord) String() string {
	var b strings.Builder
	b.WriteString(string(r.Leader.Bytes()))
	b.WriteByte('\n')
	for _, f := range r.Fields {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// StringRecord is a ByteRecord whose every field and subfield value has
// been verified as valid UTF-8.
type StringRecord struct {
	*ByteRecord
}

// NewStringRecord validates record and, on success, wraps it as a
// StringRecord.
func NewStringRecord(record *ByteRecord) (StringRecord, error) {
	if err := record.Validate(); err != nil {
		return StringRecord{}, err
	}
	return StringRecord{record}, nil
}
