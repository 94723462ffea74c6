// =============================================================================
// Purchase Order Generator - XLSX Workbook Parser
// =============================================================================
//
// This module reads a generated workbook back into the same row structure the
// CSV parser produces, so both outputs go through one validator.
//
// WORKBOOK STRUCTURE (Expected):
//   Row 1 holds the column headers; every following row is one record.
//
//   | PO Number     | Vendor    | ... | Unit Price | ... | Assigned To |
//   |---------------|-----------|-----|------------|-----|-------------|
//   | PO-2026-12345 | Acme Corp | ... | 999.99     | ... | David Lee   |
//
// Cell values are read as displayed, so money cells come back with the two
// decimals of their number format.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/po-data-generator/internal/csvparser"
)

// ErrEmptySheet is returned when the sheet has no header row.
var ErrEmptySheet = errors.New("worksheet is empty")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a sheet of an XLSX file.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//   - sheet: The sheet to read. Empty selects the first sheet.
//
// RETURNS:
//   - The parsed rows.
//   - An error if the file cannot be opened or the sheet cannot be read.
func Parse(path, sheet string) (*csvparser.CSVData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	data, err := parseSheet(f, sheet)
	if err != nil {
		return nil, err
	}

	data.SourceFile = path
	return data, nil
}

// ParseReader reads a sheet of an XLSX workbook from r.
func ParseReader(r io.Reader, sheet string) (*csvparser.CSVData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return parseSheet(f, sheet)
}

// parseSheet reads one sheet from an open XLSX file.
func parseSheet(f *excelize.File, sheet string) (*csvparser.CSVData, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 || isRowEmpty(rows[0]) {
		return nil, ErrEmptySheet
	}

	header := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		records = append(records, padRow(row, len(header)))
	}

	return csvparser.NewCSVData(header, records), nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if all cells in a row are empty.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// padRow extends row to width. GetRows drops trailing empty cells.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
