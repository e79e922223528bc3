package matcher

import (
	"strconv"
	"strings"
)

// scanner is a small hand-rolled recursive-descent cursor over a matcher
// expression's bytes. Every grammar in this package (tag, indicator,
// subfield, field, leader, record) is parsed the same way TreeRex-marc21
// parses its own binary format: direct byte inspection, no
// parser-combinator library, explicit error returns.
type scanner struct {
	input string
	pos   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.input) {
		return 0
	}
	return s.input[s.pos+offset]
}

func (s *scanner) skipWS() {
	for !s.eof() && isMatcherSpace(s.peek()) {
		s.pos++
	}
}

func isMatcherSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// tryConsume advances past lit iff the remaining input starts with it
// exactly (case-sensitive: every keyword in this grammar is).
func (s *scanner) tryConsume(lit string) bool {
	if strings.HasPrefix(s.input[s.pos:], lit) {
		s.pos += len(lit)
		return true
	}
	return false
}

// tryConsumeByte advances past a single matching byte.
func (s *scanner) tryConsumeByte(b byte) bool {
	if s.peek() == b {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) errorAt(message string) *ParseMatcherError {
	return parseErr(message, s.pos, s.pos, s.input)
}

func (s *scanner) errorSpan(message string, start int) *ParseMatcherError {
	return parseErr(message, start, s.pos, s.input)
}

// parseQuantifierOpt parses an optional leading "ANY "/"ALL " quantifier,
// each of which must be followed by at least one space so it cannot merge
// with an adjacent token. Absence defaults to QuantifierAny.
func (s *scanner) parseQuantifierOpt() Quantifier {
	start := s.pos
	if s.tryConsume("ALL") && s.consumeWS1() {
		return QuantifierAll
	}
	s.pos = start
	if s.tryConsume("ANY") && s.consumeWS1() {
		return QuantifierAny
	}
	s.pos = start
	return QuantifierAny
}

// consumeWS1 requires and consumes at least one whitespace byte.
func (s *scanner) consumeWS1() bool {
	start := s.pos
	s.skipWS()
	return s.pos > start
}

// parseCodes parses a subfield/field code set: a single alphanumeric byte,
// or a bracketed, deduplicated list of alphanumeric bytes.
func (s *scanner) parseCodes() ([]byte, error) {
	if s.tryConsumeByte('[') {
		var codes []byte
		for {
			if s.eof() {
				return nil, s.errorAt("unterminated code class")
			}
			b := s.peek()
			if b == ']' {
				s.pos++
				break
			}
			if !isAlphanumeric(b) {
				return nil, s.errorAt("code class must contain only alphanumeric bytes")
			}
			codes = appendDeduped(codes, b)
			s.pos++
		}
		if len(codes) == 0 {
			return nil, s.errorAt("code class must not be empty")
		}
		return codes, nil
	}

	if s.eof() || !isAlphanumeric(s.peek()) {
		return nil, s.errorAt("expected an alphanumeric code")
	}
	b := s.peek()
	s.pos++
	return []byte{b}, nil
}

func isAlphanumeric(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func appendDeduped(codes []byte, b byte) []byte {
	for _, c := range codes {
		if c == b {
			return codes
		}
	}
	return append(codes, b)
}

// parseComparisonOperator tries the six comparison operators, longest
// prefix first so ">=" and "<=" aren't mis-parsed as ">"/"<".
func (s *scanner) parseComparisonOperator() (ComparisonOperator, error) {
	switch {
	case s.tryConsume("=="):
		return OpEq, nil
	case s.tryConsume("!="):
		return OpNe, nil
	case s.tryConsume(">="):
		return OpGe, nil
	case s.tryConsume(">"):
		return OpGt, nil
	case s.tryConsume("<="):
		return OpLe, nil
	case s.tryConsume("<"):
		return OpLt, nil
	default:
		return 0, s.errorAt("expected a comparison operator")
	}
}

// parseQuotedLiteral parses a single- or double-quoted byte-string
// literal. The opposite quote character is treated as a literal byte
// inside. The escape set is \n \r \t \b \f \\ \/ \' \" plus a backslash
// followed by whitespace, which is erased (line continuation).
func (s *scanner) parseQuotedLiteral() (string, error) {
	if s.eof() {
		return "", s.errorAt("expected a quoted literal")
	}
	quote := s.peek()
	if quote != '\'' && quote != '"' {
		return "", s.errorAt("expected a quoted literal")
	}
	start := s.pos
	s.pos++

	var b strings.Builder
	for {
		if s.eof() {
			return "", s.errorSpan("unterminated literal", start)
		}
		c := s.peek()
		if c == quote {
			s.pos++
			return b.String(), nil
		}
		if c == '\\' {
			s.pos++
			if s.eof() {
				return "", s.errorSpan("unterminated escape sequence", start)
			}
			e := s.peek()
			switch e {
			case 'n':
				b.WriteByte('\n')
				s.pos++
			case 'r':
				b.WriteByte('\r')
				s.pos++
			case 't':
				b.WriteByte('\t')
				s.pos++
			case 'b':
				b.WriteByte('\b')
				s.pos++
			case 'f':
				b.WriteByte('\f')
				s.pos++
			case '\\', '/', '\'', '"':
				b.WriteByte(e)
				s.pos++
			default:
				if isMatcherSpace(e) {
					for !s.eof() && isMatcherSpace(s.peek()) {
						s.pos++
					}
				} else {
					return "", s.errorAt("unsupported escape sequence")
				}
			}
			continue
		}
		b.WriteByte(c)
		s.pos++
	}
}

// parseU32Value parses 1-10 ASCII digits folded as an unsigned 64-bit
// number, rejecting anything that overflows a u32.
func (s *scanner) parseU32Value() (uint32, error) {
	start := s.pos
	for !s.eof() && isDigitByte(s.peek()) {
		s.pos++
	}
	if s.pos == start {
		return 0, s.errorAt("expected a decimal number")
	}
	if s.pos-start > 10 {
		return 0, s.errorSpan("number is too long", start)
	}
	v, err := strconv.ParseUint(s.input[start:s.pos], 10, 64)
	if err != nil || v > 1<<32-1 {
		return 0, s.errorSpan("number out of range for a u32", start)
	}
	return uint32(v), nil
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// parseCharValue parses a single byte inside a quoted literal, per the
// grammar's Char value form.
func (s *scanner) parseCharValue() (byte, error) {
	lit, err := s.parseQuotedLiteral()
	if err != nil {
		return 0, err
	}
	if len(lit) != 1 {
		return 0, s.errorAt("a char value must be exactly one byte")
	}
	return lit[0], nil
}

// parseLiteralList parses either a single quoted literal or a bracketed,
// comma-separated list of quoted literals, used by every string-predicate
// operator's right-hand side.
func (s *scanner) parseLiteralList() ([]string, error) {
	s.skipWS()
	if s.tryConsumeByte('[') {
		var out []string
		s.skipWS()
		for {
			lit, err := s.parseQuotedLiteral()
			if err != nil {
				return nil, err
			}
			out = append(out, lit)
			s.skipWS()
			if s.tryConsumeByte(',') {
				s.skipWS()
				continue
			}
			break
		}
		s.skipWS()
		if !s.tryConsumeByte(']') {
			return nil, s.errorAt("expected ']' to close a literal list")
		}
		return out, nil
	}

	lit, err := s.parseQuotedLiteral()
	if err != nil {
		return nil, err
	}
	return []string{lit}, nil
}

// groupDepth bounds parenthesis nesting to defend the recursive-descent
// parser's call stack, mirroring the 12-level cap shared by the subfield
// and record grammars.
type groupDepth struct {
	level int
}

const maxGroupDepth = 12

func (g *groupDepth) enter(s *scanner) error {
	g.level++
	if g.level > maxGroupDepth {
		return s.errorAt("parenthesis nesting exceeds the allowed depth")
	}
	return nil
}

func (g *groupDepth) leave() {
	g.level--
}
