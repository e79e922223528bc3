package matcher

import "github.com/go-marc21/marc21"

// RecordMatcher is the top-level matcher expression (C12): a leader
// predicate or a field predicate, joined by "&&", "||", parenthesised
// groups, and leading "!" negation of a group. Precedence and
// associativity match the subfield grammar: "&&" binds tighter than
// left-associative "||".
type RecordMatcher interface {
	IsMatch(record *marc21.ByteRecord, opts MatchOptions) bool
}

// leaderField names one of the five comparable leader positions.
type leaderField int

const (
	leaderFieldLength leaderField = iota
	leaderFieldBaseAddress
	leaderFieldEncoding
	leaderFieldStatus
	leaderFieldType
)

// leaderMatcher evaluates "ldr.FIELD op literal" against a decoded leader.
type leaderMatcher struct {
	field    leaderField
	operator ComparisonOperator
	value    Value
}

func (m *leaderMatcher) IsMatch(record *marc21.ByteRecord, _ MatchOptions) bool {
	switch m.field {
	case leaderFieldLength:
		return m.operator.Evaluate(U32Value(record.Leader.Length), m.value)
	case leaderFieldBaseAddress:
		return m.operator.Evaluate(U32Value(record.Leader.BaseAddress), m.value)
	case leaderFieldEncoding:
		return m.operator.Evaluate(CharValue(record.Leader.Encoding), m.value)
	case leaderFieldStatus:
		return m.operator.Evaluate(CharValue(record.Leader.Status), m.value)
	case leaderFieldType:
		return m.operator.Evaluate(CharValue(record.Leader.Type), m.value)
	default:
		return false
	}
}

// fieldPredicateMatcher lifts a field matcher (C11) onto the record's
// field list, so it can compose with leader predicates in the same
// boolean expression.
type fieldPredicateMatcher struct {
	inner FieldMatcher
}

func (m *fieldPredicateMatcher) IsMatch(record *marc21.ByteRecord, opts MatchOptions) bool {
	return m.inner.IsMatch(record.Fields, opts)
}

type groupRecordMatcher struct{ inner RecordMatcher }

func (m *groupRecordMatcher) IsMatch(record *marc21.ByteRecord, opts MatchOptions) bool {
	return m.inner.IsMatch(record, opts)
}

type notRecordMatcher struct{ inner RecordMatcher }

func (m *notRecordMatcher) IsMatch(record *marc21.ByteRecord, opts MatchOptions) bool {
	return !m.inner.IsMatch(record, opts)
}

type recordBooleanOp int

const (
	recordAnd recordBooleanOp = iota
	recordOr
)

type compositeRecordMatcher struct {
	lhs, rhs RecordMatcher
	op       recordBooleanOp
}

func (m *compositeRecordMatcher) IsMatch(record *marc21.ByteRecord, opts MatchOptions) bool {
	if m.op == recordAnd {
		return m.lhs.IsMatch(record, opts) && m.rhs.IsMatch(record, opts)
	}
	return m.lhs.IsMatch(record, opts) || m.rhs.IsMatch(record, opts)
}

// ParseRecordMatcher parses a complete record-matcher expression: leader
// predicates ("ldr.FIELD op literal") and field predicates (C11),
// composed with "&&", "||", parenthesised groups up to 12 levels deep,
// and a leading "!" that may only prefix a parenthesised group.
func ParseRecordMatcher(expr string) (RecordMatcher, error) {
	s := newScanner(expr)
	gd := &groupDepth{}
	m, err := parseRecordOr(s, gd)
	if err != nil {
		return nil, err
	}
	s.skipWS()
	if !s.eof() {
		return nil, s.errorAt("unexpected trailing input after record matcher")
	}
	return m, nil
}

func parseRecordOr(s *scanner, gd *groupDepth) (RecordMatcher, error) {
	lhs, err := parseRecordAnd(s, gd)
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		s.skipWS()
		if s.tryConsume("||") {
			rhs, err := parseRecordAnd(s, gd)
			if err != nil {
				return nil, err
			}
			lhs = &compositeRecordMatcher{lhs: lhs, rhs: rhs, op: recordOr}
			continue
		}
		s.pos = save
		break
	}
	return lhs, nil
}

func parseRecordAnd(s *scanner, gd *groupDepth) (RecordMatcher, error) {
	lhs, err := parseRecordAtom(s, gd)
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		s.skipWS()
		if s.tryConsume("&&") {
			rhs, err := parseRecordAtom(s, gd)
			if err != nil {
				return nil, err
			}
			lhs = &compositeRecordMatcher{lhs: lhs, rhs: rhs, op: recordAnd}
			continue
		}
		s.pos = save
		break
	}
	return lhs, nil
}

func parseRecordAtom(s *scanner, gd *groupDepth) (RecordMatcher, error) {
	s.skipWS()

	if s.peek() == '(' {
		start := s.pos
		s.pos++
		if err := gd.enter(s); err != nil {
			return nil, err
		}
		inner, err := parseRecordOr(s, gd)
		if err != nil {
			return nil, err
		}
		s.skipWS()
		if !s.tryConsumeByte(')') {
			return nil, s.errorSpan("expected ')' to close a group", start)
		}
		gd.leave()
		return &groupRecordMatcher{inner: inner}, nil
	}

	if s.peek() == '!' {
		s.pos++
		s.skipWS()
		if s.peek() != '(' {
			return nil, s.errorAt("'!' must be followed by a parenthesised group")
		}
		inner, err := parseRecordAtom(s, gd)
		if err != nil {
			return nil, err
		}
		return &notRecordMatcher{inner: inner}, nil
	}

	if s.tryConsume("ldr.") {
		return parseLeaderMatcherFrom(s)
	}

	inner, err := parseFieldMatcherFrom(s)
	if err != nil {
		return nil, err
	}
	return &fieldPredicateMatcher{inner: inner}, nil
}

func parseLeaderMatcherFrom(s *scanner) (RecordMatcher, error) {
	field, err := parseLeaderFieldName(s)
	if err != nil {
		return nil, err
	}
	s.skipWS()
	op, err := s.parseComparisonOperator()
	if err != nil {
		return nil, err
	}
	s.skipWS()

	switch field {
	case leaderFieldLength, leaderFieldBaseAddress:
		v, err := s.parseU32Value()
		if err != nil {
			return nil, err
		}
		return &leaderMatcher{field: field, operator: op, value: U32Value(v)}, nil
	default:
		c, err := s.parseCharValue()
		if err != nil {
			return nil, err
		}
		return &leaderMatcher{field: field, operator: op, value: CharValue(c)}, nil
	}
}

// parseLeaderFieldName matches the longest keyword first so "base_address"
// can't be mis-parsed as a prefix of any shorter field name.
func parseLeaderFieldName(s *scanner) (leaderField, error) {
	switch {
	case s.tryConsume("base_address"):
		return leaderFieldBaseAddress, nil
	case s.tryConsume("encoding"):
		return leaderFieldEncoding, nil
	case s.tryConsume("length"):
		return leaderFieldLength, nil
	case s.tryConsume("status"):
		return leaderFieldStatus, nil
	case s.tryConsume("type"):
		return leaderFieldType, nil
	default:
		return 0, s.errorAt("expected a leader field name (length, base_address, encoding, status, type)")
	}
}
