package csvwriter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/po-data-generator/internal/generator"
)

// mapRecord is a minimal Record used to exercise escaping with arbitrary values.
type mapRecord struct {
	keys   []string
	values map[string]string
}

func (r mapRecord) Keys() []string { return r.keys }

func (r mapRecord) Value(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

func buildRecords(t *testing.T, n int) []generator.PurchaseOrder {
	t.Helper()
	g := generator.NewSeeded(21, generator.WithClock(func() time.Time {
		return time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	}))
	records, err := g.Build(n, nil)
	require.NoError(t, err)
	return records
}

func TestEscape(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"plain":                 "plain",
		"1x Laptop; 2x Mouse":   "1x Laptop; 2x Mouse",
		"Acme, Inc":             `"Acme, Inc"`,
		`say "hi"`:              `"say ""hi"""`,
		"line\nbreak":           "\"line\nbreak\"",
		`comma, and "quote"`:    `"comma, and ""quote"""`,
		"2026-03-14":            "2026-03-14",
		"PO-2026-12345":         "PO-2026-12345",
	}
	for in, want := range cases {
		assert.Equal(t, want, Escape(in), "input %q", in)
	}
}

func TestMarshal_roundTrip(t *testing.T) {
	records := buildRecords(t, 200)

	data, err := Marshal(records)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 201)
	assert.Equal(t, generator.Columns, rows[0])

	for i, record := range records {
		assert.Equal(t, record.Row(), rows[i+1])
	}
}

func TestMarshal_singleRecord(t *testing.T) {
	records := buildRecords(t, 1)

	data, err := Marshal(records)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(generator.Columns, ","), lines[0])
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestMarshal_emptyNotesUnquoted(t *testing.T) {
	record := mapRecord{
		keys:   []string{"PO Number", "Notes", "Vendor"},
		values: map[string]string{"PO Number": "PO-2026-10000", "Notes": "", "Vendor": "Acme Corp"},
	}

	data, err := Marshal([]mapRecord{record})
	require.NoError(t, err)
	assert.Equal(t, "PO Number,Notes,Vendor\nPO-2026-10000,,Acme Corp\n", string(data))
}

func TestMarshal_specialValuesReparse(t *testing.T) {
	record := mapRecord{
		keys: []string{"A", "B", "C"},
		values: map[string]string{
			"A": "Acme, Inc",
			"B": `the "best" vendor`,
			"C": "multi\nline",
		},
	}

	data, err := Marshal([]mapRecord{record})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"the ""best"" vendor"`)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Acme, Inc", `the "best" vendor`, "multi\nline"}, rows[1])
}

func TestMarshal_noRecords(t *testing.T) {
	data, err := Marshal([]generator.PurchaseOrder{})
	assert.Nil(t, data)
	assert.True(t, errors.Is(err, ErrNoRecords))
}

func TestMarshal_missingField(t *testing.T) {
	first := mapRecord{keys: []string{"A", "B"}, values: map[string]string{"A": "1", "B": "2"}}
	second := mapRecord{keys: []string{"A"}, values: map[string]string{"A": "3"}}

	_, err := Marshal([]mapRecord{first, second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `record 2: missing field "B"`)
}
