// Package marctest builds well-formed MARC 21 byte buffers for tests, the
// way a fixture record is constructed by hand rather than read from disk.
package marctest

import "fmt"

// Subfield is one $code/value pair inside a data field.
type Subfield struct {
	Code  byte
	Value string
}

// Field describes either a control field (Tag starting "00", Value set) or
// a data field (Ind1/Ind2 plus Subfields set).
type Field struct {
	Tag       string
	Value     string
	Ind1      byte
	Ind2      byte
	Subfields []Subfield
}

// Leader carries the implementation-defined leader positions a fixture
// wants to control; zero values default to a plain bibliographic record.
type Leader struct {
	Status   byte
	Type     byte
	Idef1    byte
	Idef2    byte
	Encoding byte
	Idef3    byte
	Idef4    byte
	Idef5    byte
}

func (l Leader) withDefaults() Leader {
	if l.Status == 0 {
		l.Status = 'n'
	}
	if l.Type == 0 {
		l.Type = 'a'
	}
	if l.Idef1 == 0 {
		l.Idef1 = 'm'
	}
	if l.Idef2 == 0 {
		l.Idef2 = ' '
	}
	if l.Encoding == 0 {
		l.Encoding = 'a'
	}
	if l.Idef3 == 0 {
		l.Idef3 = ' '
	}
	if l.Idef4 == 0 {
		l.Idef4 = 'a'
	}
	if l.Idef5 == 0 {
		l.Idef5 = ' '
	}
	return l
}

const (
	delimiter        = 0x1f
	fieldTerminator  = 0x1e
	recordTerminator = 0x1d
)

// Build assembles a complete, valid MARC 21 record from a leader spec and
// an ordered field list, computing the directory, base address, and total
// length the way a real cataloguing system would.
func Build(leader Leader, fields []Field) []byte {
	leader = leader.withDefaults()

	var payload []byte
	type entry struct {
		tag    string
		length int
		start  int
	}
	var entries []entry

	for _, f := range fields {
		start := len(payload)
		var fieldBytes []byte
		if len(f.Tag) >= 2 && f.Tag[0] == '0' && f.Tag[1] == '0' {
			fieldBytes = append(fieldBytes, []byte(f.Value)...)
			fieldBytes = append(fieldBytes, fieldTerminator)
		} else {
			ind1, ind2 := f.Ind1, f.Ind2
			if ind1 == 0 {
				ind1 = ' '
			}
			if ind2 == 0 {
				ind2 = ' '
			}
			fieldBytes = append(fieldBytes, ind1, ind2)
			for _, sf := range f.Subfields {
				fieldBytes = append(fieldBytes, delimiter, sf.Code)
				fieldBytes = append(fieldBytes, []byte(sf.Value)...)
			}
			fieldBytes = append(fieldBytes, fieldTerminator)
		}
		payload = append(payload, fieldBytes...)
		entries = append(entries, entry{tag: f.Tag, length: len(fieldBytes), start: start})
	}

	var directory []byte
	for _, e := range entries {
		directory = append(directory, []byte(e.tag)...)
		directory = append(directory, []byte(fmt.Sprintf("%04d%05d", e.length, e.start))...)
	}
	directory = append(directory, fieldTerminator)

	const leaderSize = 24
	baseAddress := leaderSize + len(directory)
	totalLength := baseAddress + len(payload) + 1

	leaderBytes := fmt.Sprintf("%05d%c%c%c%c%c22%05d%c%c%c4500",
		totalLength, leader.Status, leader.Type, leader.Idef1, leader.Idef2,
		leader.Encoding, baseAddress, leader.Idef3, leader.Idef4, leader.Idef5)

	out := make([]byte, 0, totalLength)
	out = append(out, []byte(leaderBytes)...)
	out = append(out, directory...)
	out = append(out, payload...)
	out = append(out, recordTerminator)
	return out
}
