package xlsxparser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/po-data-generator/internal/generator"
	"github.com/ginjaninja78/po-data-generator/internal/validation"
	"github.com/ginjaninja78/po-data-generator/internal/xlsxwriter"
)

func workbook(t *testing.T, n int) ([]generator.PurchaseOrder, []byte) {
	t.Helper()
	g := generator.NewSeeded(8, generator.WithClock(func() time.Time {
		return time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	}))
	records, err := g.Build(n, nil)
	require.NoError(t, err)

	data, err := xlsxwriter.Marshal(records)
	require.NoError(t, err)
	return records, data
}

func TestParse_roundTrip(t *testing.T) {
	records, data := workbook(t, 40)

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	parsed, err := Parse(path, xlsxwriter.SheetName)
	require.NoError(t, err)

	assert.Equal(t, path, parsed.SourceFile)
	assert.Equal(t, generator.Columns, parsed.Headers)
	require.Equal(t, 40, parsed.RowCount)

	for i, record := range records {
		assert.Equal(t, record.Row(), parsed.RawRows[i])
	}

	result := validation.Validate(parsed)
	assert.True(t, result.IsValid, validation.FormatErrors(result.Errors))
}

func TestParseReader_firstSheet(t *testing.T) {
	records, data := workbook(t, 3)

	parsed, err := ParseReader(bytes.NewReader(data), "")
	require.NoError(t, err)
	assert.Equal(t, records[2].PONumber, parsed.Rows[2][generator.ColPONumber])
}

func TestParseReader_missingSheet(t *testing.T) {
	_, data := workbook(t, 1)

	_, err := ParseReader(bytes.NewReader(data), "Nope")
	assert.Error(t, err)
}

func TestParseReader_emptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ParseReader(bytes.NewReader(buf.Bytes()), "")
	assert.True(t, errors.Is(err, ErrEmptySheet))
}

func TestParseReader_padsShortRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"A", "B", "C"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"1"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	parsed, err := ParseReader(bytes.NewReader(buf.Bytes()), sheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "", ""}, parsed.RawRows[0])
	assert.Equal(t, "", parsed.Rows[0]["C"])
}

func TestIsRowEmpty(t *testing.T) {
	assert.True(t, isRowEmpty(nil))
	assert.True(t, isRowEmpty([]string{"", ""}))
	assert.False(t, isRowEmpty([]string{"", "x"}))
}
