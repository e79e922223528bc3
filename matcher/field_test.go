package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-marc21/marc21"
	"github.com/go-marc21/marc21/internal/marctest"
)

func decodeFixture(t *testing.T, raw []byte) *marc21.ByteRecord {
	t.Helper()
	rec, err := marc21.FromBytes(raw)
	require.NoError(t, err)
	return rec
}

// adaFields builds an authority-style fixture record: a 001 control
// number, thirteen 400 tracing fields, two 065 fields, two 075 fields,
// and a 100 main entry.
func adaFields() []marctest.Field {
	fields := []marctest.Field{
		{Tag: "001", Value: "119232022"},
		{Tag: "100", Ind1: '1', Ind2: ' ', Subfields: []marctest.Subfield{
			{Code: 'a', Value: "Lovelace, Ada"},
		}},
		{Tag: "065", Subfields: []marctest.Subfield{
			{Code: 'a', Value: "28p"},
			{Code: '2', Value: "sswd"},
		}},
		{Tag: "065", Subfields: []marctest.Subfield{
			{Code: 'a', Value: "9.5p"},
			{Code: '2', Value: "sswd"},
		}},
		{Tag: "075", Subfields: []marctest.Subfield{
			{Code: 'b', Value: "p"},
			{Code: '2', Value: "gnd-content"},
		}},
		{Tag: "075", Subfields: []marctest.Subfield{
			{Code: 'b', Value: "piz"},
			{Code: '2', Value: "gnd-carrier"},
		}},
	}
	for i := 0; i < 13; i++ {
		fields = append(fields, marctest.Field{Tag: "400", Ind1: '1', Ind2: ' ', Subfields: []marctest.Subfield{
			{Code: 'a', Value: "King, Ada"},
		}})
	}
	return fields
}

func mustParseField(t *testing.T, expr string) FieldMatcher {
	t.Helper()
	m, err := ParseFieldMatcher(expr)
	require.NoError(t, err)
	return m
}

func TestFieldExists(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{}, adaFields()))
	opts := DefaultMatchOptions()

	assert.True(t, mustParseField(t, "001?").IsMatch(rec.Fields, opts))
	assert.False(t, mustParseField(t, "999?").IsMatch(rec.Fields, opts))
	assert.True(t, mustParseField(t, "!999?").IsMatch(rec.Fields, opts))
}

func TestFieldExistsWithIndicator(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{}, adaFields()))
	opts := DefaultMatchOptions()

	assert.True(t, mustParseField(t, "100/1#?").IsMatch(rec.Fields, opts))
	assert.False(t, mustParseField(t, "100/2#?").IsMatch(rec.Fields, opts))
}

func TestFieldCount(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{}, adaFields()))
	opts := DefaultMatchOptions()

	assert.True(t, mustParseField(t, "#400/* == 13").IsMatch(rec.Fields, opts))
	assert.False(t, mustParseField(t, "#400/* == 12").IsMatch(rec.Fields, opts))
	assert.True(t, mustParseField(t, "#400/* <= 13").IsMatch(rec.Fields, opts))
}

func TestFieldControlComparison(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{}, adaFields()))
	opts := DefaultMatchOptions()

	assert.True(t, mustParseField(t, "001 == '119232022'").IsMatch(rec.Fields, opts))
	assert.False(t, mustParseField(t, "001 in ['1', '2']").IsMatch(rec.Fields, opts))
	assert.True(t, mustParseField(t, "001 not in ['1', '2']").IsMatch(rec.Fields, opts))
}

func TestFieldControlRangeSlicing(t *testing.T) {
	fields := append([]marctest.Field{{Tag: "005", Value: "20250101120000.0"}}, adaFields()...)
	rec := decodeFixture(t, marctest.Build(marctest.Leader{}, fields))
	opts := DefaultMatchOptions()

	assert.True(t, mustParseField(t, "005[:4] == '2025'").IsMatch(rec.Fields, opts))
	// An out-of-range end yields the wholly empty slice, not a clamped one.
	assert.False(t, mustParseField(t, "005[0:1024] == 'X'").IsMatch(rec.Fields, opts))
	assert.True(t, mustParseField(t, "005[0:1024] == ''").IsMatch(rec.Fields, opts))
	assert.True(t, mustParseField(t, "005[0] == '2'").IsMatch(rec.Fields, opts))
}

func TestFieldDataShortForm(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{}, adaFields()))
	opts := DefaultMatchOptions()

	assert.True(t, mustParseField(t, "100/1#.a =^ 'Love'").IsMatch(rec.Fields, opts))
	assert.True(t, mustParseField(t, "400/1#.a =~ '^K[io]ng.*Ada$'").IsMatch(rec.Fields, opts))
	assert.False(t, mustParseField(t, "400/1#.a =~ '^K[Io]ng.*Ada$'").IsMatch(rec.Fields, opts))
}

func TestFieldDataLongForm(t *testing.T) {
	rec := decodeFixture(t, marctest.Build(marctest.Leader{}, adaFields()))
	opts := DefaultMatchOptions()

	assert.True(t, mustParseField(t, "065{ a == '28p' && 2 == 'sswd' }").IsMatch(rec.Fields, opts))
	assert.True(t, mustParseField(t,
		"ALL 075{ ALL b =~ '^p(iz)?$' && 2 =~ '^gnd' }").IsMatch(rec.Fields, opts))
}

func TestFieldMatcherRejectsGarbage(t *testing.T) {
	_, err := ParseFieldMatcher("not a matcher")
	assert.Error(t, err)
}
