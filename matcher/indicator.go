package matcher

// indicatorAlphabet lists every byte a single indicator position may hold:
// space, lowercase ASCII, and digits.
const indicatorAlphabet = " 0123456789abcdefghijklmnopqrstuvwxyz"

func isIndicatorByte(b byte) bool {
	return b == ' ' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z')
}

type indicatorConstituentKind int

const (
	indicatorValue indicatorConstituentKind = iota
	indicatorClass
	indicatorAny
)

type indicatorConstituent struct {
	kind  indicatorConstituentKind
	value byte
	class []byte
}

func (c indicatorConstituent) matches(b byte) bool {
	switch c.kind {
	case indicatorValue:
		return b == c.value
	case indicatorAny:
		return true
	case indicatorClass:
		for _, d := range c.class {
			if d == b {
				return true
			}
		}
		return false
	default:
		return false
	}
}

type indicatorMatcherKind int

const (
	indicatorNone indicatorMatcherKind = iota // no "/..." suffix: both indicators must be space
	indicatorWildcard
	indicatorPattern
)

// IndicatorMatcher matches the two indicator positions following a tag
// (C9). Applied to a control field, only None and Wildcard ever match.
type IndicatorMatcher struct {
	kind      indicatorMatcherKind
	positions [2]indicatorConstituent
}

// IsMatchControl reports whether m matches a control field, which has no
// indicators of its own.
func (m *IndicatorMatcher) IsMatchControl() bool {
	return m.kind == indicatorNone || m.kind == indicatorWildcard
}

// IsMatchData reports whether m matches a data field's two indicators.
func (m *IndicatorMatcher) IsMatchData(ind1, ind2 byte) bool {
	switch m.kind {
	case indicatorNone:
		return ind1 == ' ' && ind2 == ' '
	case indicatorWildcard:
		return true
	case indicatorPattern:
		return m.positions[0].matches(ind1) && m.positions[1].matches(ind2)
	default:
		return false
	}
}

// parseIndicatorMatcherOpt parses an optional "/..." indicator suffix at
// s's current position. Absence of a leading '/' is not an error: it
// yields the None matcher per the grammar's default indicator convention.
func parseIndicatorMatcherOpt(s *scanner) (*IndicatorMatcher, error) {
	if !s.tryConsumeByte('/') {
		return &IndicatorMatcher{kind: indicatorNone}, nil
	}

	if s.tryConsumeByte('*') {
		return &IndicatorMatcher{kind: indicatorWildcard}, nil
	}

	var m IndicatorMatcher
	m.kind = indicatorPattern
	for i := 0; i < 2; i++ {
		c, err := parseIndicatorConstituent(s)
		if err != nil {
			return nil, err
		}
		m.positions[i] = c
	}
	return &m, nil
}

func parseIndicatorConstituent(s *scanner) (indicatorConstituent, error) {
	if s.eof() {
		return indicatorConstituent{}, s.errorAt("expected an indicator position")
	}

	if s.peek() == '.' {
		s.pos++
		return indicatorConstituent{kind: indicatorAny}, nil
	}

	if s.peek() == '[' {
		return parseIndicatorClass(s)
	}

	if s.peek() == '#' {
		s.pos++
		return indicatorConstituent{kind: indicatorValue, value: ' '}, nil
	}

	if isIndicatorByte(s.peek()) {
		b := s.peek()
		s.pos++
		return indicatorConstituent{kind: indicatorValue, value: b}, nil
	}

	return indicatorConstituent{}, s.errorAt("expected '#', a lowercase letter, a digit, '.', or a class")
}

func parseIndicatorClass(s *scanner) (indicatorConstituent, error) {
	start := s.pos
	s.pos++ // consume '['
	negated := s.tryConsumeByte('^')

	var chars []byte
	for {
		if s.eof() {
			return indicatorConstituent{}, s.errorSpan("unterminated indicator class", start)
		}
		if s.peek() == ']' {
			s.pos++
			break
		}
		b := s.peek()
		if b == '#' {
			b = ' '
		} else if !isIndicatorByte(b) {
			return indicatorConstituent{}, s.errorAt("indicator class must contain only '#', lowercase letters, digits, and ranges")
		}
		s.pos++
		if s.peek() == '-' {
			s.pos++
			b2, err := parseIndicatorRangeEnd(s, b)
			if err != nil {
				return indicatorConstituent{}, err
			}
			for c := b; c <= b2; c++ {
				chars = appendDeduped(chars, c)
			}
			continue
		}
		chars = appendDeduped(chars, b)
	}

	if len(chars) == 0 {
		return indicatorConstituent{}, s.errorSpan("indicator class must not be empty", start)
	}

	if negated {
		var complement []byte
		for i := 0; i < len(indicatorAlphabet); i++ {
			d := indicatorAlphabet[i]
			excluded := false
			for _, x := range chars {
				if x == d {
					excluded = true
					break
				}
			}
			if !excluded {
				complement = append(complement, d)
			}
		}
		chars = complement
	}

	return indicatorConstituent{kind: indicatorClass, class: chars}, nil
}

// parseIndicatorRangeEnd parses the right bound of an indicator class
// range whose left bound is lo. Both bounds must be digits or both
// lowercase letters, with the left strictly less than the right; space
// ('#') cannot bound a range.
func parseIndicatorRangeEnd(s *scanner, lo byte) (byte, error) {
	if !isDigitByte(lo) && !isLowercaseByte(lo) {
		return 0, s.errorAt("a range bound must be a digit or a lowercase letter")
	}
	if s.eof() {
		return 0, s.errorAt("expected the end of an indicator range")
	}
	hi := s.peek()
	if isDigitByte(lo) != isDigitByte(hi) || (!isDigitByte(hi) && !isLowercaseByte(hi)) {
		return 0, s.errorAt("an indicator range must pair two digits or two lowercase letters")
	}
	s.pos++
	if lo >= hi {
		return 0, s.errorAt("a range's left bound must be strictly less than its right bound")
	}
	return hi, nil
}

func isLowercaseByte(b byte) bool { return b >= 'a' && b <= 'z' }
