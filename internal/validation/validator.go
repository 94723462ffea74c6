// =============================================================================
// Purchase Order Generator - Validation Module
// =============================================================================
//
// This module checks a generated purchase order file against the rules every
// record satisfies when it leaves the generator.
//
// VALIDATION RULES:
//   File level:
//   - The header matches the generator's column list exactly
//
//   Row level:
//   - PO Number has the form PO-<year>-<10000..99999>
//   - Dates are ISO (YYYY-MM-DD); delivery = expected delivery;
//     delivery is 5-30 days after the PO date
//   - Item Description lists 1-5 "<qty>x <catalog item>" entries whose
//     quantities add up to Quantity
//   - Quantity is an integer in [1, 500]
//   - Unit Price is a decimal in [0, 1000]
//   - Tax Amount = round(Total Amount * 0.10, 2) and
//     Grand Total = round(Total Amount * 1.10, 2), compared exactly
//   - Every enumerated column holds a catalog value
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/po-data-generator/internal/catalog"
	"github.com/ginjaninja78/po-data-generator/internal/csvparser"
	"github.com/ginjaninja78/po-data-generator/internal/generator"
)

var maxUnitPrice = decimal.NewFromInt(1000)

var (
	poNumberPattern = regexp.MustCompile(`^PO-\d{4}-(\d{5})$`)
	lineItemPattern = regexp.MustCompile(`^(\d+)x (.+)$`)
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation error.
type ValidationError struct {
	// Field is the column that failed validation. Empty for file-level errors.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the short name of the violated rule.
	Rule string

	// Message is a human-readable error message.
	Message string

	// RowNumber is the 1-based data row number. Zero for file-level errors.
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RowNumber == 0 {
		return fmt.Sprintf("[%s] %s", e.Rule, e.Message)
	}
	return fmt.Sprintf("[%s] Row %d, Field '%s': %s (value: '%s')",
		e.Rule,
		e.RowNumber,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors.
	IsValid bool

	// Errors contains the collected validation errors.
	Errors []*ValidationError

	// ErrorCount is the total number of errors found, including any beyond
	// the MaxErrors cap.
	ErrorCount int

	// RowsValidated is the number of data rows checked.
	RowsValidated int

	// InvalidRows is the number of rows with at least one error.
	InvalidRows int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// MaxErrors caps the number of errors kept in the result.
	// Zero keeps every error.
	MaxErrors int
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{MaxErrors: 100}
}

// Validator checks purchase order rows.
type Validator struct {
	options ValidationOptions
}

// NewValidator creates a new Validator with default options.
func NewValidator() *Validator {
	return NewValidatorWithOptions(DefaultValidationOptions())
}

// NewValidatorWithOptions creates a new Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks every row of data with default options.
func Validate(data *csvparser.CSVData) *ValidationResult {
	return NewValidator().ValidateAll(data)
}

// ValidateAll checks the header and every row of data.
func (v *Validator) ValidateAll(data *csvparser.CSVData) *ValidationResult {
	result := &ValidationResult{}

	if err := validateHeader(data.Headers); err != nil {
		v.collect(result, []*ValidationError{err})
		result.IsValid = false
		return result
	}

	for i, row := range data.Rows {
		errs := v.ValidateRow(row, i+1)
		if len(errs) > 0 {
			result.InvalidRows++
			v.collect(result, errs)
		}
		result.RowsValidated++
	}

	result.IsValid = result.ErrorCount == 0
	return result
}

func (v *Validator) collect(result *ValidationResult, errs []*ValidationError) {
	result.ErrorCount += len(errs)
	for _, err := range errs {
		if v.options.MaxErrors > 0 && len(result.Errors) >= v.options.MaxErrors {
			return
		}
		result.Errors = append(result.Errors, err)
	}
}

// validateHeader requires the generator's columns in order.
func validateHeader(headers []string) *ValidationError {
	if slices.Equal(headers, generator.Columns) {
		return nil
	}
	return &ValidationError{
		Rule:    "header",
		Message: fmt.Sprintf("header does not match the purchase order columns: got [%s]", strings.Join(headers, ", ")),
	}
}

// ValidateRow checks a single row. rowNumber is used for reporting only.
func (v *Validator) ValidateRow(row map[string]string, rowNumber int) []*ValidationError {
	var errs []*ValidationError
	fail := func(field, rule, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Field:     field,
			Value:     row[field],
			Rule:      rule,
			Message:   fmt.Sprintf(format, args...),
			RowNumber: rowNumber,
		})
	}

	// PO number.
	if msg := validatePONumber(row[generator.ColPONumber]); msg != "" {
		fail(generator.ColPONumber, "format", "%s", msg)
	}

	// Dates.
	poDate, poErr := time.Parse(generator.DateLayout, row[generator.ColPODate])
	if poErr != nil {
		fail(generator.ColPODate, "date", "must be a date in YYYY-MM-DD format")
	}
	delivery, deliveryErr := time.Parse(generator.DateLayout, row[generator.ColDeliveryDate])
	if deliveryErr != nil {
		fail(generator.ColDeliveryDate, "date", "must be a date in YYYY-MM-DD format")
	}
	if row[generator.ColExpectedDelivery] != row[generator.ColDeliveryDate] {
		fail(generator.ColExpectedDelivery, "equal", "must equal Delivery Date")
	}
	if poErr == nil && deliveryErr == nil {
		days := int(delivery.Sub(poDate).Hours() / 24)
		if days < 5 || days > 30 {
			fail(generator.ColDeliveryDate, "range", "must be 5-30 days after PO Date, got %d", days)
		}
	}

	// Quantity and line items.
	quantity, qtyErr := strconv.Atoi(row[generator.ColQuantity])
	switch {
	case qtyErr != nil:
		fail(generator.ColQuantity, "numeric", "must be an integer")
	case quantity < 1 || quantity > 500:
		fail(generator.ColQuantity, "range", "must be between 1 and 500")
	}
	itemsTotal, msg := parseItemDescription(row[generator.ColItemDescription])
	switch {
	case msg != "":
		fail(generator.ColItemDescription, "format", "%s", msg)
	case qtyErr == nil && itemsTotal != quantity:
		fail(generator.ColQuantity, "sum", "must equal the sum of line item quantities (%d)", itemsTotal)
	}

	// Amounts.
	if unit, ok := parseAmount(row[generator.ColUnitPrice]); !ok {
		fail(generator.ColUnitPrice, "decimal", "must be a decimal with two places")
	} else if unit.IsNegative() || unit.GreaterThan(maxUnitPrice) {
		fail(generator.ColUnitPrice, "range", "must be between 0 and 1000")
	}

	total, totalOK := parseAmount(row[generator.ColTotalAmount])
	if !totalOK {
		fail(generator.ColTotalAmount, "decimal", "must be a decimal with two places")
	}
	tax, taxOK := parseAmount(row[generator.ColTaxAmount])
	if !taxOK {
		fail(generator.ColTaxAmount, "decimal", "must be a decimal with two places")
	}
	grand, grandOK := parseAmount(row[generator.ColGrandTotal])
	if !grandOK {
		fail(generator.ColGrandTotal, "decimal", "must be a decimal with two places")
	}
	if want := generator.Tax(total); totalOK && taxOK && !tax.Equal(want) {
		fail(generator.ColTaxAmount, "tax", "must be 10%% of Total Amount (%s)", generator.FormatMoney(want))
	}
	if want := generator.GrandTotal(total); totalOK && grandOK && !grand.Equal(want) {
		fail(generator.ColGrandTotal, "grand_total", "must be 110%% of Total Amount (%s)", generator.FormatMoney(want))
	}

	// Enumerated columns, in output order for stable reports.
	for _, column := range generator.Columns {
		if _, enumerated := catalog.Enumerated[column]; !enumerated {
			continue
		}
		if !catalog.Contains(column, row[column]) {
			fail(column, "enum", "is not a known %s", strings.ToLower(column))
		}
	}

	return errs
}

// =============================================================================
// FIELD VALIDATORS
// =============================================================================

// validatePONumber returns an error message, or "" when value is valid.
func validatePONumber(value string) string {
	match := poNumberPattern.FindStringSubmatch(value)
	if match == nil {
		return "must match PO-<year>-<5 digits>"
	}
	seq, _ := strconv.Atoi(match[1])
	if seq < 10000 || seq > 99999 {
		return "sequence must be between 10000 and 99999"
	}
	return ""
}

// parseItemDescription returns the summed quantity of a "; "-joined list of
// "<qty>x <name>" entries, or an error message.
func parseItemDescription(value string) (int, string) {
	entries := strings.Split(value, "; ")
	if len(entries) < 1 || len(entries) > 5 {
		return 0, fmt.Sprintf("must list 1-5 line items, got %d", len(entries))
	}

	sum := 0
	for _, entry := range entries {
		match := lineItemPattern.FindStringSubmatch(entry)
		if match == nil {
			return 0, fmt.Sprintf("line item %q must look like \"<qty>x <name>\"", entry)
		}
		qty, _ := strconv.Atoi(match[1])
		if qty < 1 || qty > 100 {
			return 0, fmt.Sprintf("line item %q quantity must be between 1 and 100", entry)
		}
		if !slices.Contains(catalog.Items, match[2]) {
			return 0, fmt.Sprintf("line item %q is not in the catalog", entry)
		}
		sum += qty
	}
	return sum, ""
}

// parseAmount parses a decimal with exactly two fractional digits.
func parseAmount(value string) (decimal.Decimal, bool) {
	dot := strings.IndexByte(value, '.')
	if dot < 0 || len(value)-dot-1 != generator.MoneyPlaces {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// =============================================================================
// REPORTING
// =============================================================================

// FormatErrors renders errors one per line.
func FormatErrors(errors []*ValidationError) string {
	var b strings.Builder
	for _, err := range errors {
		b.WriteString(err.Error())
		b.WriteByte('\n')
	}
	return b.String()
}
