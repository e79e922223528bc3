package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseTag(t *testing.T, expr string) *TagMatcher {
	t.Helper()
	m, err := ParseTagMatcher(expr)
	require.NoError(t, err)
	return m
}

func TestTagMatcherLiteral(t *testing.T) {
	m := mustParseTag(t, "245")
	assert.True(t, m.IsMatch([3]byte{'2', '4', '5'}))
	assert.False(t, m.IsMatch([3]byte{'2', '4', '6'}))
}

func TestTagMatcherWildcard(t *testing.T) {
	m := mustParseTag(t, "4..")
	assert.True(t, m.IsMatch([3]byte{'4', '0', '0'}))
	assert.True(t, m.IsMatch([3]byte{'4', '9', '9'}))
	assert.False(t, m.IsMatch([3]byte{'5', '0', '0'}))
}

func TestTagMatcherClassCompleteness(t *testing.T) {
	// [^1-35] accepts every digit in 0123456789 except {1,2,3,5}.
	m := mustParseTag(t, "0[^1-35]0")
	for d := byte('0'); d <= '9'; d++ {
		excluded := d == '1' || d == '2' || d == '3' || d == '5'
		got := m.IsMatch([3]byte{'0', d, '0'})
		assert.Equal(t, !excluded, got, "digit %q", d)
	}
}

func TestTagMatcherClassRange(t *testing.T) {
	m := mustParseTag(t, "0[3-6]0")
	for d := byte('0'); d <= '9'; d++ {
		want := d >= '3' && d <= '6'
		assert.Equal(t, want, m.IsMatch([3]byte{'0', d, '0'}), "digit %q", d)
	}
}

func TestTagMatcherClassDeduplicatesDigits(t *testing.T) {
	m := mustParseTag(t, "0[115]0")
	assert.True(t, m.IsMatch([3]byte{'0', '1', '0'}))
	assert.True(t, m.IsMatch([3]byte{'0', '5', '0'}))
	assert.False(t, m.IsMatch([3]byte{'0', '2', '0'}))
}

func TestTagMatcherClassRangeRejectsNonStrictBounds(t *testing.T) {
	_, err := ParseTagMatcher("0[5-5]0")
	assert.Error(t, err)
	_, err = ParseTagMatcher("0[6-3]0")
	assert.Error(t, err)
}

func TestTagMatcherRejectsTrailingInput(t *testing.T) {
	_, err := ParseTagMatcher("2450")
	assert.Error(t, err)
}

func TestTagMatcherRejectsEmptyClass(t *testing.T) {
	_, err := ParseTagMatcher("0[]0")
	assert.Error(t, err)
}
