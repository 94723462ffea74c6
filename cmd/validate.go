// =============================================================================
// Purchase Order Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which re-reads a generated CSV
// or XLSX file and checks every row against the generation rules.
//
// COMMAND USAGE:
//   pogen validate [file] [flags]
//   pogen validate - < orders.csv
//
// FLAGS:
//   --max-errors : Stop collecting errors after this many (default 100)
//
// CHECKS:
//   - Header matches the column list
//   - PO number and date formats, delivery window
//   - Quantity equals the sum of line item quantities
//   - Tax and grand total derived from the total
//   - Enumerated fields hold known values
//
// =============================================================================

package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-data-generator/internal/csvparser"
	"github.com/ginjaninja78/po-data-generator/internal/validation"
	"github.com/ginjaninja78/po-data-generator/internal/xlsxparser"
	"github.com/ginjaninja78/po-data-generator/internal/xlsxwriter"
	"github.com/ginjaninja78/po-data-generator/pkg/utils"
)

// stdinArg selects standard input as the file to validate.
const stdinArg = "-"

// xlsxMagic is the zip local file header every XLSX file starts with.
var xlsxMagic = []byte("PK\x03\x04")

type validateOptions struct {
	maxErrors int
}

func newValidateCmd(global *globalOptions) *cobra.Command {
	opts := &validateOptions{}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a generated CSV or XLSX file",
		Long: `Check a generated CSV or XLSX file row by row.

Without a file argument, the CSV the generator writes by default is checked.
Files ending in .xlsx are read from the "Purchase Orders" sheet.
Pass "-" to read a CSV or XLSX file from standard input.
The command exits with a non-zero status when any row is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, global, opts)
		},
	}

	validateCmd.Flags().IntVar(&opts.maxErrors, "max-errors", validation.DefaultValidationOptions().MaxErrors, "Maximum number of errors to report")

	return validateCmd
}

func runValidate(cmd *cobra.Command, args []string, global *globalOptions, opts *validateOptions) error {
	cfg, log, err := setup(cmd, global)
	if err != nil {
		return err
	}
	defer log.Sync()

	path := servedPath(cfg)
	if len(args) == 1 {
		path = args[0]
	}

	out := cmd.OutOrStdout()

	var data *csvparser.CSVData
	if path == stdinArg {
		fmt.Fprintln(out, "Validating standard input...")
		data, err = loadReader(cmd.InOrStdin())
	} else {
		size, statErr := utils.GetFileSize(path)
		if statErr != nil {
			return fmt.Errorf("failed to open %s: %w", path, statErr)
		}
		fmt.Fprintf(out, "Validating %s (%d bytes)...\n", path, size)
		data, err = load(path)
	}
	if err != nil {
		return err
	}

	validator := validation.NewValidatorWithOptions(validation.ValidationOptions{MaxErrors: opts.maxErrors})
	result := validator.ValidateAll(data)

	log.Debug("validation finished",
		zap.String("path", path),
		zap.Int("rows", result.RowsValidated),
		zap.Int("errors", result.ErrorCount),
	)

	if result.IsValid {
		fmt.Fprintf(out, "✓ All %d rows are valid\n", result.RowsValidated)
		return nil
	}

	fmt.Fprint(out, validation.FormatErrors(result.Errors))
	if len(result.Errors) < result.ErrorCount {
		fmt.Fprintf(out, "... and %d more\n", result.ErrorCount-len(result.Errors))
	}

	return fmt.Errorf("validation failed: %d errors in %d of %d rows", result.ErrorCount, result.InvalidRows, result.RowsValidated)
}

// load parses path as a workbook or a CSV file depending on its extension.
func load(path string) (*csvparser.CSVData, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsxparser.Parse(path, xlsxwriter.SheetName)
	}
	return csvparser.Parse(path)
}

// loadReader parses r as a workbook when it starts with the zip header, and
// as CSV otherwise.
func loadReader(r io.Reader) (*csvparser.CSVData, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(xlsxMagic)); bytes.Equal(head, xlsxMagic) {
		return xlsxparser.ParseReader(br, xlsxwriter.SheetName)
	}
	return csvparser.ParseReader(br)
}
