// =============================================================================
// Purchase Order Generator - CSV Writer Module
// =============================================================================
//
// This module serializes records into CSV text.
//
// OUTPUT FORMAT:
//   - Header line: the first record's keys joined by commas, in order
//   - One line per record, values looked up by header
//   - Every line terminated by "\n"
//
// ESCAPING:
//   A value containing a comma, a double quote, or a newline is wrapped in
//   double quotes with internal quotes doubled. Every other value, including
//   the empty string, is emitted as-is.
//
// =============================================================================

package csvwriter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoRecords is returned when there is no record to derive the header from.
var ErrNoRecords = errors.New("no records to serialize")

// Record is a row with ordered, named fields.
// generator.PurchaseOrder satisfies it.
type Record interface {
	Keys() []string
	Value(key string) (string, bool)
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Marshal serializes records into CSV text.
//
// PARAMETERS:
//   - records: A non-empty slice of records sharing identical keys.
//
// RETURNS:
//   - The CSV document.
//   - ErrNoRecords if records is empty.
//   - An error if a record lacks one of the header keys.
func Marshal[R Record](records []R) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Write(&buffer, records); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Write serializes records into w. See Marshal.
func Write[R Record](w io.Writer, records []R) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	headers := records[0].Keys()

	var line strings.Builder
	writeLine(&line, headers)
	if _, err := io.WriteString(w, line.String()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	values := make([]string, len(headers))
	for i, record := range records {
		for j, header := range headers {
			value, ok := record.Value(header)
			if !ok {
				return fmt.Errorf("record %d: missing field %q", i+1, header)
			}
			values[j] = value
		}

		line.Reset()
		writeLine(&line, values)
		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	return nil
}

// writeLine appends one escaped, newline-terminated CSV line.
func writeLine(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Escape(field))
	}
	b.WriteByte('\n')
}

// Escape quotes value when it contains a comma, a double quote, or a newline.
func Escape(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
