// Copyright 2013 Thomas Emerson. All rights reserved.

package marc21

import "fmt"

const leaderSize = 24

// Leader is the 24-byte fixed header that begins every MARC 21 record (C2).
type Leader struct {
	Length      uint32
	Status      byte
	Type        byte
	idef1       byte // bibliographic level, or kind-of-data for community info
	idef2       byte // type of control
	Encoding    byte
	BaseAddress uint32
	idef3       byte // encoding level
	idef4       byte // descriptive cataloging form
	idef5       byte // multipart resource record level
}

// decodeLeader parses the first leaderSize bytes of data as a MARC 21
// leader, verifying the two invariant literal '2's and the trailing literal
// "4500".
func decodeLeader(data []byte) (Leader, error) {
	if len(data) < leaderSize {
		return Leader{}, parseErrAt("record is shorter than the leader", len(data), data)
	}

	length, err := digits5(data, 0)
	if err != nil {
		return Leader{}, err
	}
	status, err := graphic(data, 5)
	if err != nil {
		return Leader{}, err
	}
	typ, err := graphic(data, 6)
	if err != nil {
		return Leader{}, err
	}
	idef1, err := spaceOrGraphic(data, 7)
	if err != nil {
		return Leader{}, err
	}
	idef2, err := spaceOrGraphic(data, 8)
	if err != nil {
		return Leader{}, err
	}
	encoding, err := spaceOrGraphic(data, 9)
	if err != nil {
		return Leader{}, err
	}
	if err := literal(data, 10, "22"); err != nil {
		return Leader{}, err
	}
	baseAddress, err := digits5(data, 12)
	if err != nil {
		return Leader{}, err
	}
	idef3, err := spaceOrGraphic(data, 17)
	if err != nil {
		return Leader{}, err
	}
	idef4, err := spaceOrGraphic(data, 18)
	if err != nil {
		return Leader{}, err
	}
	idef5, err := spaceOrGraphic(data, 19)
	if err != nil {
		return Leader{}, err
	}
	if err := literal(data, 20, "4500"); err != nil {
		return Leader{}, err
	}

	return Leader{
		Length:      length,
		Status:      status,
		Type:        typ,
		idef1:       idef1,
		idef2:       idef2,
		Encoding:    encoding,
		BaseAddress: baseAddress,
		idef3:       idef3,
		idef4:       idef4,
		idef5:       idef5,
	}, nil
}

// IsBibliographic reports whether the leader describes a bibliographic
// record, per its type byte.
func (l Leader) IsBibliographic() bool {
	switch l.Type {
	case 'a', 'c', 'd', 'e', 'f', 'g', 'i', 'j', 'k', 'm', 'o', 'p', 'r', 't':
		return true
	default:
		return false
	}
}

// IsCommunityInformation reports whether the leader describes a
// community-information record.
func (l Leader) IsCommunityInformation() bool {
	return l.Type == 'q'
}

// BibliographicLevel returns the record's bibliographic level, if the
// record is bibliographic and the position carries a graphic byte.
func (l Leader) BibliographicLevel() (byte, bool) {
	if l.IsBibliographic() && isGraphic(l.idef1) {
		return l.idef1, true
	}
	return 0, false
}

// KindOfData returns the kind-of-data code, if the record is
// community-information and the position is not blank.
func (l Leader) KindOfData() (byte, bool) {
	if l.IsCommunityInformation() && l.idef1 != ' ' {
		return l.idef1, true
	}
	return 0, false
}

// TypeOfControl returns the type-of-control code, if the record is
// bibliographic and the position is not blank.
func (l Leader) TypeOfControl() (byte, bool) {
	if l.IsBibliographic() && l.idef2 != ' ' {
		return l.idef2, true
	}
	return 0, false
}

// EncodingLevel returns the encoding-level byte (leader position 17).
func (l Leader) EncodingLevel() byte { return l.idef3 }

// CatalogingForm returns the descriptive-cataloging-form byte (position 18).
func (l Leader) CatalogingForm() byte { return l.idef4 }

// MultipartLevel returns the multipart-resource-record-level byte
// (position 19).
func (l Leader) MultipartLevel() byte { return l.idef5 }

// Bytes re-encodes the leader into its fixed 24-byte wire format. It is
// total: a Leader's invariants guarantee every field fits its slot.
func (l Leader) Bytes() []byte {
	return []byte(fmt.Sprintf("%05d%c%c%c%c%c22%05d%c%c%c4500",
		l.Length, l.Status, l.Type, l.idef1, l.idef2, l.Encoding,
		l.BaseAddress, l.idef3, l.idef4, l.idef5))
}
