// Copyright 2013 Thomas Emerson. All rights reserved.

package marc21

import "fmt"

// Subfield is a labelled byte value inside a data field (C4).
type Subfield struct {
	Code  byte
	Value []byte
}

func (s Subfield) String() string {
	return fmt.Sprintf("$%c %s", s.Code, s.Value)
}

func isAlphanumeric(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// decodeSubfields consumes zero or more subfields starting at pos, then a
// single field-separator. It returns the subfields and the position
// immediately after that separator.
func decodeSubfields(data []byte, pos int) ([]Subfield, int, error) {
	var subfields []Subfield

	for pos < len(data) && data[pos] == delimiter {
		codeStart := pos + 1
		if codeStart >= len(data) {
			return nil, 0, parseErrAt("truncated subfield", pos, data)
		}
		code := data[codeStart]
		if !isAlphanumeric(code) {
			return nil, 0, parseErrAt("subfield code must be alphanumeric", codeStart, data)
		}

		valueStart := codeStart + 1
		i := valueStart
		for i < len(data) && data[i] != delimiter && data[i] != fieldTerminator {
			i++
		}
		if i >= len(data) {
			return nil, 0, parseErrAt("unterminated subfield", pos, data)
		}

		subfields = append(subfields, Subfield{Code: code, Value: data[valueStart:i]})
		pos = i
	}

	if pos >= len(data) || data[pos] != fieldTerminator {
		return nil, 0, parseErrAt("data field must end with a field separator", pos, data)
	}

	return subfields, pos + 1, nil
}
