// Copyright 2013 Thomas Emerson. All rights reserved.

package marc21

import "fmt"

// ParseRecordError reports a failure decoding MARC 21 bytes into a record.
// It carries the byte span where the failure was detected and the offending
// buffer so a caller can dump the record verbatim.
type ParseRecordError struct {
	Message string
	Start   int
	End     int
	Data    []byte
}

func (e *ParseRecordError) Error() string {
	if e.Start == e.End {
		return fmt.Sprintf("marc21: %s at position %d", e.Message, e.Start)
	}
	return fmt.Sprintf("marc21: %s at span %d:%d", e.Message, e.Start, e.End)
}

// Raw returns the buffer that failed to decode, for verbatim dumping by
// callers that want to skip-and-continue rather than abort.
func (e *ParseRecordError) Raw() []byte {
	return e.Data
}

func parseErr(message string, start, end int, data []byte) *ParseRecordError {
	return &ParseRecordError{Message: message, Start: start, End: end, Data: data}
}

func parseErrAt(message string, pos int, data []byte) *ParseRecordError {
	return parseErr(message, pos, pos, data)
}
