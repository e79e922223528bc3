package matcher

import (
	"bytes"
	"strconv"

	"github.com/go-marc21/marc21"
)

// FieldMatcher evaluates a predicate over a record's fields (C11).
type FieldMatcher interface {
	IsMatch(fields []marc21.Field, opts MatchOptions) bool
}

func fieldMatchesTagAndIndicator(f marc21.Field, tag *TagMatcher, ind *IndicatorMatcher) bool {
	if !tag.IsMatch([3]byte(f.Tag())) {
		return false
	}
	if f.IsControlField() {
		return ind.IsMatchControl()
	}
	return ind.IsMatchData(f.Data.Indicator1, f.Data.Indicator2)
}

// --- exists ---

type existsMatcher struct {
	tag     *TagMatcher
	ind     *IndicatorMatcher
	negated bool
}

func (m *existsMatcher) IsMatch(fields []marc21.Field, _ MatchOptions) bool {
	found := false
	for _, f := range fields {
		if fieldMatchesTagAndIndicator(f, m.tag, m.ind) {
			found = true
			break
		}
	}
	if m.negated {
		return !found
	}
	return found
}

// --- count ---

type countMatcher struct {
	tag      *TagMatcher
	ind      *IndicatorMatcher
	operator ComparisonOperator
	count    uint32
}

func (m *countMatcher) IsMatch(fields []marc21.Field, _ MatchOptions) bool {
	var n uint32
	for _, f := range fields {
		if fieldMatchesTagAndIndicator(f, m.tag, m.ind) {
			n++
		}
	}
	return m.operator.Evaluate(U32Value(n), U32Value(m.count))
}

// --- control-field range slicing ---

type rangeSpec struct {
	hasStart bool
	start    int
	hasEnd   bool
	end      int
}

// apply slices value per spec: a range with either bound outside
// [0, len(value)], or an end before its start, yields the empty slice
// rather than a clamped one — the comparison then proceeds against that
// empty slice, never an error.
func (r *rangeSpec) apply(value []byte) []byte {
	if r == nil {
		return value
	}
	start, end := 0, len(value)
	if r.hasStart {
		start = r.start
	}
	if r.hasEnd {
		end = r.end
	}
	if start < 0 || start > len(value) || end < 0 || end > len(value) || end < start {
		return nil
	}
	return value[start:end]
}

// --- control-field comparison ---

type controlComparisonMatcher struct {
	tag      *TagMatcher
	rng      *rangeSpec
	operator ComparisonOperator
	value    Value
}

func (m *controlComparisonMatcher) IsMatch(fields []marc21.Field, _ MatchOptions) bool {
	for _, f := range fields {
		if !f.IsControlField() {
			continue
		}
		if !m.tag.IsMatch([3]byte(f.Tag())) {
			continue
		}
		value := m.rng.apply(f.Control.Value)
		if m.operator.Evaluate(ByteStringValue(value), m.value) {
			return true
		}
	}
	return false
}

// --- control-field in / not in ---

type controlInMatcher struct {
	tag     *TagMatcher
	rng     *rangeSpec
	negated bool
	values  [][]byte
}

func (m *controlInMatcher) IsMatch(fields []marc21.Field, _ MatchOptions) bool {
	matched := false
	for _, f := range fields {
		if !f.IsControlField() {
			continue
		}
		if !m.tag.IsMatch([3]byte(f.Tag())) {
			continue
		}
		value := m.rng.apply(f.Control.Value)
		for _, v := range m.values {
			if bytes.Equal(value, v) {
				matched = true
				break
			}
		}
		if matched {
			break
		}
	}
	if m.negated {
		return !matched
	}
	return matched
}

// --- data-field (short and long form) ---

type dataFieldMatcher struct {
	quantifier Quantifier
	tag        *TagMatcher
	ind        *IndicatorMatcher
	inner      SubfieldMatcher
}

func (m *dataFieldMatcher) IsMatch(fields []marc21.Field, opts MatchOptions) bool {
	var matching []*marc21.DataField
	for _, f := range fields {
		if f.IsControlField() {
			continue
		}
		if fieldMatchesTagAndIndicator(f, m.tag, m.ind) {
			matching = append(matching, f.Data)
		}
	}
	return m.quantifier.Apply(len(matching), func(i int) bool {
		return m.inner.IsMatch(matching[i].Subfields, opts)
	})
}

// ParseFieldMatcher parses one of the four field-matcher forms: exists
// ("[!]tag[/ind]?"), count ("#tag[/ind] op N"), control-field
// ("tag[range]? op lit" or "tag[range]? in/not in [lits]"), or data-field
// ("[ANY|ALL] tag[/ind].expr" / "[ANY|ALL] tag[/ind] { expr }").
func ParseFieldMatcher(expr string) (FieldMatcher, error) {
	s := newScanner(expr)
	m, err := parseFieldMatcherFrom(s)
	if err != nil {
		return nil, err
	}
	s.skipWS()
	if !s.eof() {
		return nil, s.errorAt("unexpected trailing input after field matcher")
	}
	return m, nil
}

func parseFieldMatcherFrom(s *scanner) (FieldMatcher, error) {
	if m, ok := tryParseField(s, parseControlFieldMatcher); ok {
		return m, nil
	}
	if m, ok := tryParseField(s, parseDataFieldMatcher); ok {
		return m, nil
	}
	if m, ok := tryParseField(s, parseExistsMatcher); ok {
		return m, nil
	}
	if m, ok := tryParseField(s, parseCountMatcher); ok {
		return m, nil
	}
	return nil, s.errorAt("expected a field matcher")
}

func tryParseField(s *scanner, fn func(*scanner) (FieldMatcher, error)) (FieldMatcher, bool) {
	save := s.pos
	m, err := fn(s)
	if err != nil {
		s.pos = save
		return nil, false
	}
	return m, true
}

func parseControlFieldMatcher(s *scanner) (FieldMatcher, error) {
	s.skipWS()
	tag, err := parseTagMatcherFrom(s)
	if err != nil {
		return nil, err
	}

	var rng *rangeSpec
	if s.peek() == '[' {
		rng, err = parseRangeSpec(s)
		if err != nil {
			return nil, err
		}
	}

	s.skipWS()
	save := s.pos
	if s.tryConsume("not") {
		if !s.consumeWS1() || !s.tryConsume("in") {
			s.pos = save
		} else {
			values, err := parseByteValueList(s)
			if err != nil {
				return nil, err
			}
			return &controlInMatcher{tag: tag, rng: rng, negated: true, values: values}, nil
		}
	} else if s.tryConsume("in") {
		values, err := parseByteValueList(s)
		if err != nil {
			return nil, err
		}
		return &controlInMatcher{tag: tag, rng: rng, values: values}, nil
	}

	op, err := s.parseComparisonOperator()
	if err != nil {
		return nil, err
	}
	s.skipWS()
	lit, err := s.parseQuotedLiteral()
	if err != nil {
		return nil, err
	}
	return &controlComparisonMatcher{tag: tag, rng: rng, operator: op, value: ByteStringValue([]byte(lit))}, nil
}

func parseRangeSpec(s *scanner) (*rangeSpec, error) {
	start := s.pos
	s.pos++ // consume '['

	if s.peek() == ':' {
		s.pos++
		var r rangeSpec
		if s.peek() != ']' {
			n, err := parseUsize(s)
			if err != nil {
				return nil, err
			}
			r.end, r.hasEnd = n, true
		}
		if !s.tryConsumeByte(']') {
			return nil, s.errorSpan("expected ']' to close a range", start)
		}
		return &r, nil
	}

	n1, err := parseUsize(s)
	if err != nil {
		return nil, err
	}

	if s.peek() == ':' {
		s.pos++
		r := rangeSpec{hasStart: true, start: n1}
		if s.peek() != ']' {
			n2, err := parseUsize(s)
			if err != nil {
				return nil, err
			}
			r.end, r.hasEnd = n2, true
		}
		if !s.tryConsumeByte(']') {
			return nil, s.errorSpan("expected ']' to close a range", start)
		}
		return &r, nil
	}

	if !s.tryConsumeByte(']') {
		return nil, s.errorSpan("expected ']' to close a range", start)
	}
	return &rangeSpec{hasStart: true, start: n1, hasEnd: true, end: n1 + 1}, nil
}

func parseUsize(s *scanner) (int, error) {
	start := s.pos
	for !s.eof() && isDigitByte(s.peek()) {
		s.pos++
	}
	if s.pos == start {
		return 0, s.errorAt("expected a decimal number")
	}
	n, err := strconv.Atoi(s.input[start:s.pos])
	if err != nil {
		return 0, s.errorSpan("invalid number", start)
	}
	return n, nil
}

func parseDataFieldMatcher(s *scanner) (FieldMatcher, error) {
	s.skipWS()
	quantifier := s.parseQuantifierOpt()

	tag, err := parseTagMatcherFrom(s)
	if err != nil {
		return nil, err
	}
	ind, err := parseIndicatorMatcherOpt(s)
	if err != nil {
		return nil, err
	}

	if s.tryConsumeByte('.') {
		inner, err := parseSubfieldMatcherShort(s)
		if err != nil {
			return nil, err
		}
		return &dataFieldMatcher{quantifier: quantifier, tag: tag, ind: ind, inner: inner}, nil
	}

	s.skipWS()
	if s.tryConsumeByte('{') {
		gd := &groupDepth{}
		inner, err := parseSubfieldOr(s, gd, true)
		if err != nil {
			return nil, err
		}
		s.skipWS()
		if !s.tryConsumeByte('}') {
			return nil, s.errorAt("expected '}' to close a data field matcher")
		}
		return &dataFieldMatcher{quantifier: quantifier, tag: tag, ind: ind, inner: inner}, nil
	}

	return nil, s.errorAt("expected '.' or '{' after a data field tag")
}

func parseExistsMatcher(s *scanner) (FieldMatcher, error) {
	s.skipWS()
	negated := s.tryConsumeByte('!')

	tag, err := parseTagMatcherFrom(s)
	if err != nil {
		return nil, err
	}
	ind, err := parseIndicatorMatcherOpt(s)
	if err != nil {
		return nil, err
	}
	if !s.tryConsumeByte('?') {
		return nil, s.errorAt("expected '?'")
	}
	return &existsMatcher{tag: tag, ind: ind, negated: negated}, nil
}

func parseCountMatcher(s *scanner) (FieldMatcher, error) {
	s.skipWS()
	if !s.tryConsumeByte('#') {
		return nil, s.errorAt("expected '#'")
	}
	tag, err := parseTagMatcherFrom(s)
	if err != nil {
		return nil, err
	}
	ind, err := parseIndicatorMatcherOpt(s)
	if err != nil {
		return nil, err
	}
	s.skipWS()
	op, err := s.parseComparisonOperator()
	if err != nil {
		return nil, err
	}
	s.skipWS()
	n, err := s.parseU32Value()
	if err != nil {
		return nil, err
	}
	return &countMatcher{tag: tag, ind: ind, operator: op, count: n}, nil
}
