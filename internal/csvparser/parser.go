// =============================================================================
// Purchase Order Generator - CSV Parser Module
// =============================================================================
//
// This module reads a generated purchase order CSV back into memory. It is
// used by the validate command and by the read API.
//
// FEATURES:
//   - Header row mapped to column names
//   - Rows exposed both as header -> value maps and as raw slices
//   - Strict quoting: the generator always writes well-formed CSV
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyFile is returned when the CSV has no header row.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents the parsed CSV file.
type CSVData struct {
	// Headers contains the column headers from the first row.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// RawRows contains the data rows as string slices, in Headers order.
	RawRows [][]string

	// SourceFile is the path to the source CSV file, if read from disk.
	SourceFile string

	// RowCount is the number of data rows (excluding the header).
	RowCount int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - The parsed data.
//   - An error if the file cannot be opened or parsed. A missing file
//     satisfies errors.Is(err, os.ErrNotExist).
func Parse(filePath string) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(bufio.NewReader(file))
	if err != nil {
		return nil, err
	}

	data.SourceFile = filePath
	return data, nil
}

// ParseReader parses CSV from r.
//
// PARSING PROCESS:
//  1. Read all rows
//  2. Take the first row as the header
//  3. Convert every other row to a map of header -> value
func ParseReader(r io.Reader) (*CSVData, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, ErrEmptyFile
	}

	return NewCSVData(allRows[0], allRows[1:]), nil
}

// NewCSVData builds CSVData from a header row and data rows. Every row must
// have at least as many fields as the header.
func NewCSVData(header []string, rows [][]string) *CSVData {
	headers := cleanHeaders(header)

	return &CSVData{
		Headers:  headers,
		Rows:     extractDataRows(rows, headers),
		RawRows:  rows,
		RowCount: len(rows),
	}
}

// configureReader configures the CSV reader for generated files.
func configureReader(reader *csv.Reader) {
	reader.Comma = ','

	// Every row must have as many fields as the header.
	reader.FieldsPerRecord = 0
}

// cleanHeaders trims whitespace and a UTF-8 byte order mark from headers.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		cleaned[i] = strings.TrimSpace(header)
	}
	return cleaned
}

// extractDataRows converts raw rows to header -> value maps.
func extractDataRows(rows [][]string, headers []string) []map[string]string {
	dataRows := make([]map[string]string, 0, len(rows))

	for _, row := range rows {
		rowMap := make(map[string]string, len(headers))
		for colIndex, header := range headers {
			rowMap[header] = row[colIndex]
		}
		dataRows = append(dataRows, rowMap)
	}

	return dataRows
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// GetColumnByHeader returns all values for a specific column.
func GetColumnByHeader(data *CSVData, header string) []string {
	values := make([]string, len(data.Rows))
	for i, row := range data.Rows {
		values[i] = row[header]
	}
	return values
}

// GetUniqueValues returns the distinct values of a column in first-seen order.
func GetUniqueValues(data *CSVData, header string) []string {
	seen := make(map[string]bool)
	unique := []string{}

	for _, row := range data.Rows {
		value := row[header]
		if !seen[value] {
			seen[value] = true
			unique = append(unique, value)
		}
	}

	return unique
}

// CountValues returns how many rows hold each value of a column.
func CountValues(data *CSVData, header string) map[string]int {
	counts := make(map[string]int)
	for _, row := range data.Rows {
		counts[row[header]]++
	}
	return counts
}

// FilterRows returns rows for which filterFunc returns true.
func FilterRows(data *CSVData, filterFunc func(row map[string]string) bool) []map[string]string {
	filtered := []map[string]string{}

	for _, row := range data.Rows {
		if filterFunc(row) {
			filtered = append(filtered, row)
		}
	}

	return filtered
}
