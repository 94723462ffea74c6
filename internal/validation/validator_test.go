package validation

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/po-data-generator/internal/csvparser"
	"github.com/ginjaninja78/po-data-generator/internal/csvwriter"
	"github.com/ginjaninja78/po-data-generator/internal/generator"
)

func generatedData(t *testing.T, n int) *csvparser.CSVData {
	t.Helper()
	g := generator.NewSeeded(77, generator.WithClock(func() time.Time {
		return time.Date(2026, time.December, 20, 8, 0, 0, 0, time.UTC)
	}))
	records, err := g.Build(n, nil)
	require.NoError(t, err)

	out, err := csvwriter.Marshal(records)
	require.NoError(t, err)

	data, err := csvparser.ParseReader(bytes.NewReader(out))
	require.NoError(t, err)
	return data
}

func validRow(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		"PO Number":         "PO-2026-12345",
		"Vendor":            "Acme Corp",
		"PO Date":           "2026-03-14",
		"Delivery Date":     "2026-03-24",
		"Expected Delivery": "2026-03-24",
		"Item Description":  "2x Laptop; 10x Mouse",
		"Quantity":          "12",
		"Unit Price":        "999.99",
		"Total Amount":      "2124.98",
		"Currency":          "USD",
		"Payment Terms":     "Net 30",
		"Department":        "IT",
		"Location":          "London",
		"Approval Status":   "Approved",
		"Priority":          "High",
		"Notes":             "",
		"Tax Amount":        "212.50",
		"Grand Total":       "2337.48",
		"Created By":        "Emily Chen",
		"Assigned To":       "David Lee",
	}
}

func rules(errs []*ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field + ":" + e.Rule
	}
	return out
}

func TestValidate_generatedFileIsValid(t *testing.T) {
	result := Validate(generatedData(t, 1000))

	assert.True(t, result.IsValid, FormatErrors(result.Errors))
	assert.Equal(t, 1000, result.RowsValidated)
	assert.Zero(t, result.InvalidRows)
}

func TestValidateRow_valid(t *testing.T) {
	assert.Empty(t, NewValidator().ValidateRow(validRow(t), 1))
}

func TestValidateRow_violations(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"po number format", "PO Number", "PO-26-1", "PO Number:format"},
		{"po number sequence", "PO Number", "PO-2026-01234", "PO Number:format"},
		{"bad date", "PO Date", "14/03/2026", "PO Date:date"},
		{"expected differs", "Expected Delivery", "2026-03-25", "Expected Delivery:equal"},
		{"delivery too soon", "Delivery Date", "2026-03-15", "Delivery Date:range"},
		{"quantity not numeric", "Quantity", "twelve", "Quantity:numeric"},
		{"quantity mismatch", "Quantity", "13", "Quantity:sum"},
		{"unknown item", "Item Description", "2x Laptop; 10x Toaster", "Item Description:format"},
		{"unit price range", "Unit Price", "1000.01", "Unit Price:range"},
		{"unit price decimals", "Unit Price", "999.9", "Unit Price:decimal"},
		{"tax", "Tax Amount", "200.00", "Tax Amount:tax"},
		{"grand total", "Grand Total", "2400.00", "Grand Total:grand_total"},
		{"tax off by a cent", "Tax Amount", "212.49", "Tax Amount:tax"},
		{"grand total off by a cent", "Grand Total", "2337.49", "Grand Total:grand_total"},
		{"vendor", "Vendor", "Nobody Ltd", "Vendor:enum"},
		{"notes", "Notes", "Leave at the door", "Notes:enum"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := validRow(t)
			row[tc.field] = tc.value
			if tc.field == "Delivery Date" {
				row["Expected Delivery"] = tc.value
			}

			errs := NewValidator().ValidateRow(row, 3)
			require.NotEmpty(t, errs)
			assert.Contains(t, rules(errs), tc.want)
			assert.Equal(t, 3, errs[0].RowNumber)
		})
	}
}

func TestValidateAll_headerMismatch(t *testing.T) {
	data, err := csvparser.ParseReader(strings.NewReader("PO Number,Vendor\nPO-2026-12345,Acme Corp\n"))
	require.NoError(t, err)

	result := Validate(data)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "header", result.Errors[0].Rule)
	assert.Zero(t, result.RowsValidated)
}

func TestValidateAll_maxErrors(t *testing.T) {
	data := generatedData(t, 10)
	for _, row := range data.Rows {
		row["Vendor"] = "Nobody Ltd"
		row["Currency"] = "XYZ"
	}

	result := NewValidatorWithOptions(ValidationOptions{MaxErrors: 5}).ValidateAll(data)
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 5)
	assert.Equal(t, 20, result.ErrorCount)
	assert.Equal(t, 10, result.InvalidRows)
}

func TestValidationError_Error(t *testing.T) {
	rowErr := &ValidationError{Field: "Vendor", Value: "X", Rule: "enum", Message: "is not a known vendor", RowNumber: 4}
	assert.Equal(t, "[enum] Row 4, Field 'Vendor': is not a known vendor (value: 'X')", rowErr.Error())

	fileErr := &ValidationError{Rule: "header", Message: "bad header"}
	assert.Equal(t, "[header] bad header", fileErr.Error())
}
