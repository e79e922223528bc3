// Copyright 2013 Thomas Emerson. All rights reserved.

package marc21

import "testing"

func TestTagClassification(t *testing.T) {
	tests := []struct {
		tag         string
		isControl   bool
		isDataField bool
	}{
		{"001", true, false},
		{"005", true, false},
		{"245", false, true},
		{"400", false, true},
	}

	for _, tc := range tests {
		tag, err := decodeTag([]byte(tc.tag), 0)
		if err != nil {
			t.Fatalf("decodeTag(%q): %v", tc.tag, err)
		}
		if tag.IsControlField() != tc.isControl {
			t.Errorf("%q.IsControlField() = %v, want %v", tc.tag, tag.IsControlField(), tc.isControl)
		}
		if tag.IsDataField() != tc.isDataField {
			t.Errorf("%q.IsDataField() = %v, want %v", tc.tag, tag.IsDataField(), tc.isDataField)
		}
		if tag.String() != tc.tag {
			t.Errorf("tag.String() = %q, want %q", tag.String(), tc.tag)
		}
	}
}

func TestDecodeTagRejectsNonDigits(t *testing.T) {
	if _, err := decodeTag([]byte("24a"), 0); err == nil {
		t.Errorf("expected an error for a non-digit tag byte")
	}
}
