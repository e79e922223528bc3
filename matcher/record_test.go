package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-marc21/marc21/internal/marctest"
)

func mustParseRecord(t *testing.T, expr string) RecordMatcher {
	t.Helper()
	m, err := ParseRecordMatcher(expr)
	require.NoError(t, err)
	return m
}

func TestRecordMatcherLeaderPredicates(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{Status: 'n', Type: 'a', Encoding: 'a'}, adaFields()))
	opts := DefaultMatchOptions()

	length := rec.Leader.Length
	assert.True(t, mustParseRecord(t, quotedU32Expr("ldr.length", length)).IsMatch(rec, opts))
	assert.False(t, mustParseRecord(t, quotedU32Expr("ldr.length", length+1)).IsMatch(rec, opts))
	assert.True(t, mustParseRecord(t, "ldr.status == 'n'").IsMatch(rec, opts))
	assert.True(t, mustParseRecord(t, "ldr.type == 'a'").IsMatch(rec, opts))
	assert.True(t, mustParseRecord(t, "ldr.encoding == 'a'").IsMatch(rec, opts))
	assert.True(t, mustParseRecord(t, quotedU32ExprGt("ldr.base_address", rec.Leader.BaseAddress)).IsMatch(rec, opts))
}

func quotedU32Expr(field string, v uint32) string {
	return field + " == " + itoa(v)
}

func quotedU32ExprGt(field string, v uint32) string {
	lower := v
	if lower > 0 {
		lower--
	}
	return field + " > " + itoa(lower)
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}

func TestRecordMatcherFieldPredicate(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{}, adaFields()))
	opts := DefaultMatchOptions()

	assert.True(t, mustParseRecord(t, "001 == '119232022'").IsMatch(rec, opts))
	assert.True(t, mustParseRecord(t, "#400/* == 13").IsMatch(rec, opts))
}

func TestRecordMatcherPrecedenceAndGrouping(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{Type: 'a'}, adaFields()))
	opts := DefaultMatchOptions()

	// "001 == 'Z' || ldr.type == 'a' && 100/1#.a =^ 'Love'" parses as
	// "A || (B && C)": A is false, B and C are both true, so the whole
	// expression is true.
	expr := "001 == 'Z' || ldr.type == 'a' && 100/1#.a =^ 'Love'"
	assert.True(t, mustParseRecord(t, expr).IsMatch(rec, opts))
}

func TestRecordMatcherNegationAndParens(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{Type: 'a'}, adaFields()))
	opts := DefaultMatchOptions()

	assert.False(t, mustParseRecord(t, "!(ldr.type == 'a')").IsMatch(rec, opts))
	assert.True(t, mustParseRecord(t, "!(ldr.type == 'z')").IsMatch(rec, opts))
	assert.True(t, mustParseRecord(t, "(ldr.type == 'a') && (001 == '119232022')").IsMatch(rec, opts))
}

func TestRecordMatcherShortCircuit(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{Type: 'a'}, adaFields()))
	opts := DefaultMatchOptions()

	// An invalid regex would fail at build time, not evaluation, so a
	// well-formed but never-reached right-hand side still has to parse.
	assert.False(t, mustParseRecord(t, "ldr.type == 'z' && 100/1#.a =~ '^Ada$'").IsMatch(rec, opts))
	assert.True(t, mustParseRecord(t, "ldr.type == 'a' || 100/1#.a =~ '^Ada$'").IsMatch(rec, opts))
}

func TestRecordMatcherNestingLimit(t *testing.T) {
	expr12 := repeatParens(12) + "ldr.type == 'a'" + closeParens(12)
	_, err := ParseRecordMatcher(expr12)
	assert.NoError(t, err)

	expr13 := repeatParens(13) + "ldr.type == 'a'" + closeParens(13)
	_, err = ParseRecordMatcher(expr13)
	assert.Error(t, err)
}

func TestRecordMatcherRejectsMismatchedLiteralKind(t *testing.T) {
	// ldr.length takes a U32 literal, not a Char.
	_, err := ParseRecordMatcher("ldr.length == 'a'")
	assert.Error(t, err)
}

func TestRecordMatcherRejectsUnknownLeaderField(t *testing.T) {
	_, err := ParseRecordMatcher("ldr.nonsense == 1")
	assert.Error(t, err)
}
