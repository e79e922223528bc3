// Package matcher implements the record-matcher expression language: a
// small grammar of comparison, string-predicate, and set-membership
// operators over MARC 21 leader, tag, indicator, subfield, and field values
// (C7-C12).
package matcher

import "bytes"

// ValueKind discriminates the match-value tagged union (C7).
type ValueKind int

const (
	KindByteString ValueKind = iota
	KindChar
	KindU32
)

// Value is a tagged union of the three literal forms the grammar produces:
// a quoted byte string, a single-quoted character, or an unsigned 32-bit
// number. Ordering is defined only between same-kind values; cross-kind
// comparisons are never true, by construction of the grammar rather than
// by runtime guesswork.
type Value struct {
	Kind  ValueKind
	Bytes []byte
	Char  byte
	U32   uint32
}

func ByteStringValue(b []byte) Value { return Value{Kind: KindByteString, Bytes: b} }
func CharValue(c byte) Value         { return Value{Kind: KindChar, Char: c} }
func U32Value(v uint32) Value        { return Value{Kind: KindU32, U32: v} }

// Equal reports whether v equals other under the same-kind-only rule.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindByteString:
		return bytes.Equal(v.Bytes, other.Bytes)
	case KindChar:
		return v.Char == other.Char
	case KindU32:
		return v.U32 == other.U32
	default:
		return false
	}
}

// Compare returns -1, 0, or 1 the way bytes.Compare does, and ok=false when
// the two values are not the same kind (cross-kind ordering is undefined
// and must never be treated as satisfied).
func (v Value) Compare(other Value) (cmp int, ok bool) {
	if v.Kind != other.Kind {
		return 0, false
	}
	switch v.Kind {
	case KindByteString:
		return bytes.Compare(v.Bytes, other.Bytes), true
	case KindChar:
		switch {
		case v.Char < other.Char:
			return -1, true
		case v.Char > other.Char:
			return 1, true
		default:
			return 0, true
		}
	case KindU32:
		switch {
		case v.U32 < other.U32:
			return -1, true
		case v.U32 > other.U32:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// AsBytes renders v as the byte slice a comparison operator can compare
// against a subfield or control-field value: ByteString as-is, Char as a
// single byte, U32 not applicable (callers never compare U32 against raw
// field bytes; it's reserved for leader predicates).
func (v Value) AsBytes() []byte {
	switch v.Kind {
	case KindByteString:
		return v.Bytes
	case KindChar:
		return []byte{v.Char}
	default:
		return nil
	}
}

// ComparisonOperator is one of the six comparison operators shared by the
// subfield, control-field, and leader matchers.
type ComparisonOperator int

const (
	OpEq ComparisonOperator = iota
	OpNe
	OpGe
	OpGt
	OpLe
	OpLt
)

// Evaluate applies op to the ordering between a and b. Cross-kind operands
// (ok=false from Compare) are never equal, so OpEq is false and OpNe is
// true; every ordering operator is unsatisfied.
func (op ComparisonOperator) Evaluate(a, b Value) bool {
	if op == OpEq {
		return a.Equal(b)
	}
	if op == OpNe {
		return !a.Equal(b)
	}
	cmp, ok := a.Compare(b)
	if !ok {
		return false
	}
	switch op {
	case OpGe:
		return cmp >= 0
	case OpGt:
		return cmp > 0
	case OpLe:
		return cmp <= 0
	case OpLt:
		return cmp < 0
	default:
		return false
	}
}

// Quantifier governs how a subfield- or field-level predicate is lifted
// over a set of candidates.
type Quantifier int

const (
	// QuantifierAny is the grammar's default: true iff at least one
	// candidate satisfies the predicate. Vacuously false.
	QuantifierAny Quantifier = iota
	// QuantifierAll: true iff every candidate satisfies the predicate.
	// Vacuously true.
	QuantifierAll
)

// Apply lifts a per-candidate predicate over n candidates according to q,
// short-circuiting on the first value that decides the outcome.
func (q Quantifier) Apply(n int, satisfies func(i int) bool) bool {
	switch q {
	case QuantifierAll:
		for i := 0; i < n; i++ {
			if !satisfies(i) {
				return false
			}
		}
		return true
	default: // QuantifierAny
		for i := 0; i < n; i++ {
			if satisfies(i) {
				return true
			}
		}
		return false
	}
}

// MatchOptions carries the one real knob observed by any operator: the
// similarity threshold used by the `=*`/`!*` operator. A latent
// case-sensitivity option present in the original sources is deliberately
// omitted here: no operator ever reads it.
type MatchOptions struct {
	StrsimThreshold float64
}

// DefaultMatchOptions returns the grammar's documented default options.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{StrsimThreshold: 0.8}
}
