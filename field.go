// Copyright 2013 Thomas Emerson. All rights reserved.

package marc21

import (
	"strings"
	"unicode/utf8"
)

// ControlField carries an opaque byte value under a control tag (C4).
type ControlField struct {
	Tag   Tag
	Value []byte
}

func (f ControlField) String() string {
	return f.Tag.String() + " " + string(f.Value)
}

// DataField carries two indicator bytes and an ordered subfield list (C4).
type DataField struct {
	Tag        Tag
	Indicator1 byte
	Indicator2 byte
	Subfields  []Subfield
}

func (f DataField) String() string {
	var b strings.Builder
	b.WriteString(f.Tag.String())

	ind1, ind2 := f.Indicator1, f.Indicator2
	if ind1 != ' ' || ind2 != ' ' {
		b.WriteByte('/')
		b.WriteByte(displayIndicator(ind1))
		b.WriteByte(displayIndicator(ind2))
	}
	for _, sf := range f.Subfields {
		b.WriteByte(' ')
		b.WriteString(sf.String())
	}
	return b.String()
}

func displayIndicator(b byte) byte {
	if b == ' ' {
		return '#'
	}
	return b
}

// SubfieldValues returns the byte values of every subfield in f whose code
// is in codes.
func (f DataField) SubfieldValues(codes []byte) [][]byte {
	var values [][]byte
	for _, sf := range f.Subfields {
		for _, c := range codes {
			if sf.Code == c {
				values = append(values, sf.Value)
				break
			}
		}
	}
	return values
}

// Field is either a control field or a data field, never both.
type Field struct {
	Control *ControlField
	Data    *DataField
}

// IsControlField reports whether f holds a control field.
func (f Field) IsControlField() bool { return f.Control != nil }

// Tag returns the field's tag regardless of variant.
func (f Field) Tag() Tag {
	if f.Control != nil {
		return f.Control.Tag
	}
	return f.Data.Tag
}

func (f Field) String() string {
	if f.Control != nil {
		return f.Control.String()
	}
	return f.Data.String()
}

// Validate reports a non-nil error if any subfield or control-field value
// contains invalid UTF-8.
func (f Field) Validate() error {
	if f.Control != nil {
		if !utf8.Valid(f.Control.Value) {
			return parseErrAt("control field value is not valid UTF-8", 0, f.Control.Value)
		}
		return nil
	}
	for _, sf := range f.Data.Subfields {
		if !utf8.Valid(sf.Value) {
			return parseErrAt("subfield value is not valid UTF-8", 0, sf.Value)
		}
	}
	return nil
}

func decodeIndicator(data []byte, pos int) (byte, error) {
	if pos >= len(data) {
		return 0, parseErrAt("unexpected end of input, expected an indicator", pos, data)
	}
	b := data[pos]
	if b == ' ' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') {
		return b, nil
	}
	return 0, parseErrAt("indicator must be space, a lowercase letter, or a digit", pos, data)
}

// decodeField decodes one field from payload at pos, per entry. It returns
// the field and the position immediately after it.
func decodeField(payload []byte, pos int, entry DirectoryEntry) (Field, int, error) {
	if entry.IsControlField() {
		valueLen := int(entry.Length) - 1
		if valueLen < 0 || pos+valueLen > len(payload) {
			return Field{}, 0, parseErrAt("truncated control field", pos, payload)
		}
		value := payload[pos : pos+valueLen]
		end := pos + valueLen
		if end >= len(payload) || payload[end] != fieldTerminator {
			return Field{}, 0, parseErrAt("control field must end with a field separator", end, payload)
		}
		return Field{Control: &ControlField{Tag: entry.Tag, Value: value}}, end + 1, nil
	}

	ind1, err := decodeIndicator(payload, pos)
	if err != nil {
		return Field{}, 0, err
	}
	ind2, err := decodeIndicator(payload, pos+1)
	if err != nil {
		return Field{}, 0, err
	}

	subfields, next, err := decodeSubfields(payload, pos+2)
	if err != nil {
		return Field{}, 0, err
	}

	return Field{Data: &DataField{
		Tag:        entry.Tag,
		Indicator1: ind1,
		Indicator2: ind2,
		Subfields:  subfields,
	}}, next, nil
}
