package matcher

import (
	"bytes"
	"regexp"

	"github.com/agnivade/levenshtein"

	"github.com/go-marc21/marc21"
)

// SubfieldMatcher evaluates a predicate over a data field's subfields
// (C10). Every variant first selects the subset of subfields whose code
// is in its code set, then lifts its per-subfield predicate over that
// subset with its quantifier (ANY by default).
type SubfieldMatcher interface {
	IsMatch(subfields []marc21.Subfield, opts MatchOptions) bool
}

func selectValues(subfields []marc21.Subfield, codes []byte) [][]byte {
	var out [][]byte
	for _, sf := range subfields {
		for _, c := range codes {
			if sf.Code == c {
				out = append(out, sf.Value)
				break
			}
		}
	}
	return out
}

// --- comparison ---

type comparisonMatcher struct {
	quantifier Quantifier
	codes      []byte
	operator   ComparisonOperator
	value      Value
}

func (m *comparisonMatcher) IsMatch(subfields []marc21.Subfield, _ MatchOptions) bool {
	values := selectValues(subfields, m.codes)
	return m.quantifier.Apply(len(values), func(i int) bool {
		return m.operator.Evaluate(ByteStringValue(values[i]), m.value)
	})
}

// --- contains ---

type containsMatcher struct {
	quantifier Quantifier
	negated    bool
	codes      []byte
	patterns   []string
}

func (m *containsMatcher) IsMatch(subfields []marc21.Subfield, _ MatchOptions) bool {
	values := selectValues(subfields, m.codes)
	return m.quantifier.Apply(len(values), func(i int) bool {
		found := false
		for _, p := range m.patterns {
			if bytes.Contains(values[i], []byte(p)) {
				found = true
				break
			}
		}
		if m.negated {
			return !found
		}
		return found
	})
}

// --- regex ---

type regexMatcher struct {
	quantifier Quantifier
	negated    bool
	codes      []byte
	patterns   []*regexp.Regexp
}

func (m *regexMatcher) IsMatch(subfields []marc21.Subfield, _ MatchOptions) bool {
	values := selectValues(subfields, m.codes)
	return m.quantifier.Apply(len(values), func(i int) bool {
		found := false
		for _, re := range m.patterns {
			if re.Match(values[i]) {
				found = true
				break
			}
		}
		if m.negated {
			return !found
		}
		return found
	})
}

// --- starts/ends with ---

type startsWithMatcher struct {
	quantifier Quantifier
	negated    bool
	codes      []byte
	patterns   []string
}

func (m *startsWithMatcher) IsMatch(subfields []marc21.Subfield, _ MatchOptions) bool {
	values := selectValues(subfields, m.codes)
	return m.quantifier.Apply(len(values), func(i int) bool {
		found := false
		for _, p := range m.patterns {
			if bytes.HasPrefix(values[i], []byte(p)) {
				found = true
				break
			}
		}
		if m.negated {
			return !found
		}
		return found
	})
}

type endsWithMatcher struct {
	quantifier Quantifier
	negated    bool
	codes      []byte
	patterns   []string
}

func (m *endsWithMatcher) IsMatch(subfields []marc21.Subfield, _ MatchOptions) bool {
	values := selectValues(subfields, m.codes)
	return m.quantifier.Apply(len(values), func(i int) bool {
		found := false
		for _, p := range m.patterns {
			if bytes.HasSuffix(values[i], []byte(p)) {
				found = true
				break
			}
		}
		if m.negated {
			return !found
		}
		return found
	})
}

// --- similarity ---

type similarityMatcher struct {
	quantifier Quantifier
	negated    bool
	codes      []byte
	patterns   []string
}

// normalizedSimilarity computes 1 - distance/max(len(a), len(b)), the
// normalised Levenshtein similarity; two empty strings are defined as
// maximally similar.
func normalizedSimilarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

func (m *similarityMatcher) IsMatch(subfields []marc21.Subfield, opts MatchOptions) bool {
	values := selectValues(subfields, m.codes)
	return m.quantifier.Apply(len(values), func(i int) bool {
		found := false
		value := string(values[i])
		for _, p := range m.patterns {
			if normalizedSimilarity(value, p) >= opts.StrsimThreshold {
				found = true
				break
			}
		}
		if m.negated {
			return !found
		}
		return found
	})
}

// --- in / not in ---

type inMatcher struct {
	quantifier Quantifier
	negated    bool
	codes      []byte
	values     [][]byte
}

func (m *inMatcher) IsMatch(subfields []marc21.Subfield, _ MatchOptions) bool {
	values := selectValues(subfields, m.codes)
	return m.quantifier.Apply(len(values), func(i int) bool {
		found := false
		for _, v := range m.values {
			if bytes.Equal(values[i], v) {
				found = true
				break
			}
		}
		if m.negated {
			return !found
		}
		return found
	})
}

// --- group / not / composite ---

type groupSubfieldMatcher struct{ inner SubfieldMatcher }

func (m *groupSubfieldMatcher) IsMatch(subfields []marc21.Subfield, opts MatchOptions) bool {
	return m.inner.IsMatch(subfields, opts)
}

type notSubfieldMatcher struct{ inner SubfieldMatcher }

func (m *notSubfieldMatcher) IsMatch(subfields []marc21.Subfield, opts MatchOptions) bool {
	return !m.inner.IsMatch(subfields, opts)
}

type subfieldBooleanOp int

const (
	subfieldAnd subfieldBooleanOp = iota
	subfieldOr
)

type compositeSubfieldMatcher struct {
	lhs, rhs SubfieldMatcher
	op       subfieldBooleanOp
}

func (m *compositeSubfieldMatcher) IsMatch(subfields []marc21.Subfield, opts MatchOptions) bool {
	if m.op == subfieldAnd {
		return m.lhs.IsMatch(subfields, opts) && m.rhs.IsMatch(subfields, opts)
	}
	return m.lhs.IsMatch(subfields, opts) || m.rhs.IsMatch(subfields, opts)
}

// ParseSubfieldMatcher parses a full subfield-matcher expression: the
// quantified comparison/predicate atoms composed with "&&", "||",
// parenthesised groups, and leading "!" negation of a group. Parenthesis
// nesting is capped at 12 levels.
func ParseSubfieldMatcher(expr string) (SubfieldMatcher, error) {
	s := newScanner(expr)
	gd := &groupDepth{}
	m, err := parseSubfieldOr(s, gd, true)
	if err != nil {
		return nil, err
	}
	s.skipWS()
	if !s.eof() {
		return nil, s.errorAt("unexpected trailing input after subfield matcher")
	}
	return m, nil
}

// parseSubfieldMatcherShort parses a single non-quantified atom, used
// inline by the field matcher's short form ("tag.expr").
func parseSubfieldMatcherShort(s *scanner) (SubfieldMatcher, error) {
	return parseSubfieldAtomFamily(s, false)
}

func parseSubfieldOr(s *scanner, gd *groupDepth, quantified bool) (SubfieldMatcher, error) {
	lhs, err := parseSubfieldAnd(s, gd, quantified)
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		s.skipWS()
		if s.tryConsume("||") {
			rhs, err := parseSubfieldAnd(s, gd, quantified)
			if err != nil {
				return nil, err
			}
			lhs = &compositeSubfieldMatcher{lhs: lhs, rhs: rhs, op: subfieldOr}
			continue
		}
		s.pos = save
		break
	}
	return lhs, nil
}

func parseSubfieldAnd(s *scanner, gd *groupDepth, quantified bool) (SubfieldMatcher, error) {
	lhs, err := parseSubfieldAtom(s, gd, quantified)
	if err != nil {
		return nil, err
	}
	for {
		save := s.pos
		s.skipWS()
		if s.tryConsume("&&") {
			rhs, err := parseSubfieldAtom(s, gd, quantified)
			if err != nil {
				return nil, err
			}
			lhs = &compositeSubfieldMatcher{lhs: lhs, rhs: rhs, op: subfieldAnd}
			continue
		}
		s.pos = save
		break
	}
	return lhs, nil
}

func parseSubfieldAtom(s *scanner, gd *groupDepth, quantified bool) (SubfieldMatcher, error) {
	s.skipWS()

	if s.peek() == '(' {
		start := s.pos
		s.pos++
		if err := gd.enter(s); err != nil {
			return nil, err
		}
		inner, err := parseSubfieldOr(s, gd, quantified)
		if err != nil {
			return nil, err
		}
		s.skipWS()
		if !s.tryConsumeByte(')') {
			return nil, s.errorSpan("expected ')' to close a group", start)
		}
		gd.leave()
		return &groupSubfieldMatcher{inner: inner}, nil
	}

	if s.peek() == '!' {
		s.pos++
		s.skipWS()
		if s.peek() != '(' {
			return nil, s.errorAt("'!' must be followed by a parenthesised group")
		}
		inner, err := parseSubfieldAtom(s, gd, quantified)
		if err != nil {
			return nil, err
		}
		return &notSubfieldMatcher{inner: inner}, nil
	}

	return parseSubfieldAtomFamily(s, quantified)
}

// parseSubfieldAtomFamily parses one of the comparison/contains/regex/
// starts-with/ends-with/similarity/in atoms, shared by both the full and
// short grammars.
func parseSubfieldAtomFamily(s *scanner, quantified bool) (SubfieldMatcher, error) {
	quantifier := QuantifierAny
	if quantified {
		quantifier = s.parseQuantifierOpt()
	}

	codes, err := s.parseCodes()
	if err != nil {
		return nil, err
	}

	s.skipWS()

	switch {
	case s.tryConsume("=?"):
		patterns, err := s.parseLiteralList()
		if err != nil {
			return nil, err
		}
		return &containsMatcher{quantifier: quantifier, codes: codes, patterns: patterns}, nil
	case s.tryConsume("!?"):
		patterns, err := s.parseLiteralList()
		if err != nil {
			return nil, err
		}
		return &containsMatcher{quantifier: quantifier, negated: true, codes: codes, patterns: patterns}, nil
	case s.tryConsume("=~"):
		return parseRegexAtom(s, quantifier, codes, false)
	case s.tryConsume("!~"):
		return parseRegexAtom(s, quantifier, codes, true)
	case s.tryConsume("=^"):
		patterns, err := s.parseLiteralList()
		if err != nil {
			return nil, err
		}
		return &startsWithMatcher{quantifier: quantifier, codes: codes, patterns: patterns}, nil
	case s.tryConsume("!^"):
		patterns, err := s.parseLiteralList()
		if err != nil {
			return nil, err
		}
		return &startsWithMatcher{quantifier: quantifier, negated: true, codes: codes, patterns: patterns}, nil
	case s.tryConsume("=$"):
		patterns, err := s.parseLiteralList()
		if err != nil {
			return nil, err
		}
		return &endsWithMatcher{quantifier: quantifier, codes: codes, patterns: patterns}, nil
	case s.tryConsume("!$"):
		patterns, err := s.parseLiteralList()
		if err != nil {
			return nil, err
		}
		return &endsWithMatcher{quantifier: quantifier, negated: true, codes: codes, patterns: patterns}, nil
	case s.tryConsume("=*"):
		patterns, err := s.parseLiteralList()
		if err != nil {
			return nil, err
		}
		return &similarityMatcher{quantifier: quantifier, codes: codes, patterns: patterns}, nil
	case s.tryConsume("!*"):
		patterns, err := s.parseLiteralList()
		if err != nil {
			return nil, err
		}
		return &similarityMatcher{quantifier: quantifier, negated: true, codes: codes, patterns: patterns}, nil
	case s.tryConsume("not"):
		if !s.consumeWS1() || !s.tryConsume("in") {
			return nil, s.errorAt("expected 'not in'")
		}
		values, err := parseByteValueList(s)
		if err != nil {
			return nil, err
		}
		return &inMatcher{quantifier: quantifier, negated: true, codes: codes, values: values}, nil
	case s.tryConsume("in"):
		values, err := parseByteValueList(s)
		if err != nil {
			return nil, err
		}
		return &inMatcher{quantifier: quantifier, codes: codes, values: values}, nil
	default:
		op, err := s.parseComparisonOperator()
		if err != nil {
			return nil, s.errorAt("expected a subfield operator")
		}
		s.skipWS()
		lit, err := s.parseQuotedLiteral()
		if err != nil {
			return nil, err
		}
		return &comparisonMatcher{quantifier: quantifier, codes: codes, operator: op, value: ByteStringValue([]byte(lit))}, nil
	}
}

func parseRegexAtom(s *scanner, quantifier Quantifier, codes []byte, negated bool) (SubfieldMatcher, error) {
	patterns, err := s.parseLiteralList()
	if err != nil {
		return nil, err
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, s.errorAt("invalid regular expression: " + err.Error())
		}
		compiled = append(compiled, re)
	}
	return &regexMatcher{quantifier: quantifier, negated: negated, codes: codes, patterns: compiled}, nil
}

func parseByteValueList(s *scanner) ([][]byte, error) {
	lits, err := s.parseLiteralList()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(lits))
	for i, l := range lits {
		out[i] = []byte(l)
	}
	return out, nil
}
