// =============================================================================
// Purchase Order Generator - XLSX Writer
// =============================================================================
//
// This module writes the dataset as an Excel workbook alongside the CSV.
//
// WORKBOOK LAYOUT:
//   | A         | B      | ... | T           |
//   |-----------|--------|-----|-------------|
//   | PO Number | Vendor | ... | Assigned To |   <- bold header row
//   | PO-2026-… | Acme … | ... | David Lee   |   <- one row per record
//
//   Quantity and the money columns are stored as numbers so they can be
//   summed in a spreadsheet. Money cells use the "0.00" number format. Every
//   other column is stored as text.
//
// =============================================================================

package xlsxwriter

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/po-data-generator/internal/generator"
)

// SheetName is the name of the single worksheet.
const SheetName = "Purchase Orders"

// ErrNoRecords is returned when there is nothing to write.
var ErrNoRecords = errors.New("no records to export")

// columnWidth is applied to every column.
const columnWidth = 18

// moneyNumFmt is the built-in "0.00" number format.
const moneyNumFmt = 2

// =============================================================================
// EXPORT
// =============================================================================

// Marshal renders records as an XLSX workbook.
//
// RETURNS:
//   - The workbook bytes.
//   - ErrNoRecords if records is empty.
//   - An error if the workbook cannot be built.
func Marshal(records []generator.PurchaseOrder) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet instead of adding a second one.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream writer: %w", err)
	}

	if err := sw.SetColWidth(1, len(generator.Columns), columnWidth); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	header := make([]interface{}, len(generator.Columns))
	for i, column := range generator.Columns {
		header[i] = column
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, cells(record, moneyStyle)); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return buffer.Bytes(), nil
}

// cells converts a record to typed cell values in column order.
func cells(po generator.PurchaseOrder, moneyStyle int) []interface{} {
	money := func(v decimal.Decimal) excelize.Cell {
		return excelize.Cell{StyleID: moneyStyle, Value: v.InexactFloat64()}
	}

	row := make([]interface{}, len(generator.Columns))
	for i, column := range generator.Columns {
		switch column {
		case generator.ColQuantity:
			row[i] = po.Quantity
		case generator.ColUnitPrice:
			row[i] = money(po.UnitPrice)
		case generator.ColTotalAmount:
			row[i] = money(po.TotalAmount)
		case generator.ColTaxAmount:
			row[i] = money(po.TaxAmount)
		case generator.ColGrandTotal:
			row[i] = money(po.GrandTotal)
		default:
			row[i], _ = po.Value(column)
		}
	}
	return row
}
