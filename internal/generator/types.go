// =============================================================================
// Purchase Order Generator - Record Types
// =============================================================================
//
// This file defines the record types produced by the generator:
//   - LineItem:      one purchased product, used only to compute aggregates
//   - PurchaseOrder: one output row
//
// COLUMN ORDER:
//   The output columns are declared once in Columns. Serializers derive the
//   header from this list, never from map iteration order.
//
// =============================================================================

package generator

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COLUMNS
// =============================================================================

// Column names, in output order.
const (
	ColPONumber         = "PO Number"
	ColVendor           = "Vendor"
	ColPODate           = "PO Date"
	ColDeliveryDate     = "Delivery Date"
	ColExpectedDelivery = "Expected Delivery"
	ColItemDescription  = "Item Description"
	ColQuantity         = "Quantity"
	ColUnitPrice        = "Unit Price"
	ColTotalAmount      = "Total Amount"
	ColCurrency         = "Currency"
	ColPaymentTerms     = "Payment Terms"
	ColDepartment       = "Department"
	ColLocation         = "Location"
	ColApprovalStatus   = "Approval Status"
	ColPriority         = "Priority"
	ColNotes            = "Notes"
	ColTaxAmount        = "Tax Amount"
	ColGrandTotal       = "Grand Total"
	ColCreatedBy        = "Created By"
	ColAssignedTo       = "Assigned To"
)

// Columns is the ordered list of output columns.
var Columns = []string{
	ColPONumber,
	ColVendor,
	ColPODate,
	ColDeliveryDate,
	ColExpectedDelivery,
	ColItemDescription,
	ColQuantity,
	ColUnitPrice,
	ColTotalAmount,
	ColCurrency,
	ColPaymentTerms,
	ColDepartment,
	ColLocation,
	ColApprovalStatus,
	ColPriority,
	ColNotes,
	ColTaxAmount,
	ColGrandTotal,
	ColCreatedBy,
	ColAssignedTo,
}

// DateLayout is the ISO date format used for every date column.
const DateLayout = "2006-01-02"

// =============================================================================
// LINE ITEM
// =============================================================================

// LineItem represents a single purchased product within an order.
// Line items are aggregated into the order and never emitted on their own.
type LineItem struct {
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Category   string
}

// =============================================================================
// PURCHASE ORDER
// =============================================================================

// PurchaseOrder represents one row of the output dataset.
// All money fields are already rounded to two decimals.
type PurchaseOrder struct {
	PONumber         string
	Vendor           string
	PODate           time.Time
	DeliveryDate     time.Time
	ExpectedDelivery time.Time
	ItemDescription  string
	Quantity         int

	// UnitPrice is the unit price of the first line item, not an aggregate.
	UnitPrice decimal.Decimal

	TotalAmount    decimal.Decimal
	Currency       string
	PaymentTerms   string
	Department     string
	Location       string
	ApprovalStatus string
	Priority       string
	Notes          string
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
	CreatedBy      string
	AssignedTo     string

	// Items are the line items the order was built from. They are not part
	// of the CSV row.
	Items []LineItem
}

// Keys returns the record's field names in output order.
func (po PurchaseOrder) Keys() []string {
	return Columns
}

// Value returns the formatted value of the named column.
// The second result is false when the column does not exist.
func (po PurchaseOrder) Value(column string) (string, bool) {
	switch column {
	case ColPONumber:
		return po.PONumber, true
	case ColVendor:
		return po.Vendor, true
	case ColPODate:
		return po.PODate.Format(DateLayout), true
	case ColDeliveryDate:
		return po.DeliveryDate.Format(DateLayout), true
	case ColExpectedDelivery:
		return po.ExpectedDelivery.Format(DateLayout), true
	case ColItemDescription:
		return po.ItemDescription, true
	case ColQuantity:
		return strconv.Itoa(po.Quantity), true
	case ColUnitPrice:
		return FormatMoney(po.UnitPrice), true
	case ColTotalAmount:
		return FormatMoney(po.TotalAmount), true
	case ColCurrency:
		return po.Currency, true
	case ColPaymentTerms:
		return po.PaymentTerms, true
	case ColDepartment:
		return po.Department, true
	case ColLocation:
		return po.Location, true
	case ColApprovalStatus:
		return po.ApprovalStatus, true
	case ColPriority:
		return po.Priority, true
	case ColNotes:
		return po.Notes, true
	case ColTaxAmount:
		return FormatMoney(po.TaxAmount), true
	case ColGrandTotal:
		return FormatMoney(po.GrandTotal), true
	case ColCreatedBy:
		return po.CreatedBy, true
	case ColAssignedTo:
		return po.AssignedTo, true
	}
	return "", false
}

// Row returns all values in Columns order.
func (po PurchaseOrder) Row() []string {
	row := make([]string, len(Columns))
	for i, column := range Columns {
		row[i], _ = po.Value(column)
	}
	return row
}

// FormatMoney renders an amount with exactly two decimals.
func FormatMoney(v decimal.Decimal) string {
	return v.StringFixed(MoneyPlaces)
}
