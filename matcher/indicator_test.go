package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseIndicator(t *testing.T, expr string) *IndicatorMatcher {
	t.Helper()
	s := newScanner(expr)
	m, err := parseIndicatorMatcherOpt(s)
	require.NoError(t, err)
	require.True(t, s.eof(), "unconsumed input: %q", expr[s.pos:])
	return m
}

func TestIndicatorMatcherNoneDefaultsToBothSpace(t *testing.T) {
	m := mustParseIndicator(t, "")
	assert.True(t, m.IsMatchData(' ', ' '))
	assert.False(t, m.IsMatchData('1', ' '))
	assert.True(t, m.IsMatchControl())
}

func TestIndicatorMatcherWildcard(t *testing.T) {
	m := mustParseIndicator(t, "/*")
	assert.True(t, m.IsMatchData('1', '9'))
	assert.True(t, m.IsMatchControl())
}

func TestIndicatorMatcherValues(t *testing.T) {
	m := mustParseIndicator(t, "/1#")
	assert.True(t, m.IsMatchData('1', ' '))
	assert.False(t, m.IsMatchData('2', ' '))
	assert.False(t, m.IsMatchData('1', 'a'))
	assert.False(t, m.IsMatchControl())
}

func TestIndicatorMatcherClassAndWildcardPositions(t *testing.T) {
	m := mustParseIndicator(t, "/[01].")
	assert.True(t, m.IsMatchData('0', 'z'))
	assert.True(t, m.IsMatchData('1', '5'))
	assert.False(t, m.IsMatchData('2', 'z'))
}

func TestIndicatorMatcherNegatedClass(t *testing.T) {
	m := mustParseIndicator(t, "/[^0]#")
	assert.True(t, m.IsMatchData('1', ' '))
	assert.False(t, m.IsMatchData('0', ' '))
}

func TestIndicatorMatcherDigitRange(t *testing.T) {
	m := mustParseIndicator(t, "/[1-3].")
	for b := byte('0'); b <= '9'; b++ {
		want := b >= '1' && b <= '3'
		assert.Equal(t, want, m.IsMatchData(b, 'x'), "indicator %q", b)
	}
	assert.False(t, m.IsMatchData(' ', 'x'))
}

func TestIndicatorMatcherLetterRange(t *testing.T) {
	m := mustParseIndicator(t, "/[a-d].")
	assert.True(t, m.IsMatchData('a', ' '))
	assert.True(t, m.IsMatchData('d', ' '))
	assert.False(t, m.IsMatchData('e', ' '))
	assert.False(t, m.IsMatchData('1', ' '))
}

func TestIndicatorMatcherNegatedRange(t *testing.T) {
	m := mustParseIndicator(t, "/[^0-3]#")
	assert.False(t, m.IsMatchData('2', ' '))
	assert.True(t, m.IsMatchData('4', ' '))
	assert.True(t, m.IsMatchData('a', ' '))
	assert.True(t, m.IsMatchData(' ', ' '))
}

func TestIndicatorMatcherRangeMixesWithSingles(t *testing.T) {
	m := mustParseIndicator(t, "/[#1-3x].")
	assert.True(t, m.IsMatchData(' ', 'z'))
	assert.True(t, m.IsMatchData('2', 'z'))
	assert.True(t, m.IsMatchData('x', 'z'))
	assert.False(t, m.IsMatchData('y', 'z'))
}

func TestIndicatorMatcherRejectsMalformedRanges(t *testing.T) {
	for _, expr := range []string{"/[1-1].", "/[d-a].", "/[a-2].", "/[2-a].", "/[#-1]."} {
		s := newScanner(expr)
		_, err := parseIndicatorMatcherOpt(s)
		assert.Error(t, err, "expression %q", expr)
	}
}
