// =============================================================================
// Purchase Order Generator - Lookup Catalog
// =============================================================================
//
// This package holds the fixed lookup lists the record generator draws from.
// Every enumerated column of the output has exactly one list here, and the
// validation module checks generated files against the same lists.
//
// CUSTOMIZATION:
//   - Add entries to any list to widen the generated data.
//   - Keep "" in Notes: an empty note is a legitimate outcome.
//
// =============================================================================

package catalog

import "slices"

// =============================================================================
// LINE ITEM LISTS
// =============================================================================

// Items is the product catalog used for line items.
var Items = []string{
	"Laptop",
	"Monitor",
	"Keyboard",
	"Mouse",
	"USB Cable",
	"Desk Chair",
	"Office Desk",
	"Filing Cabinet",
	"Printer Paper",
	"Ink Cartridge",
	"Server RAM",
	"SSD Storage",
	"Network Switch",
	"Router",
	"Power Supply",
}

// Categories is the set of line item categories.
var Categories = []string{"Electronics", "Furniture", "Supplies", "Hardware"}

// =============================================================================
// RECORD LISTS
// =============================================================================

// Vendors is the list of supplier names.
var Vendors = []string{
	"Acme Corp",
	"Global Supplies Inc",
	"Tech Solutions Ltd",
	"Premium Materials Co",
	"Industrial Parts Group",
	"Office Plus",
	"Digital Systems",
	"Component World",
	"Quality Distributors",
	"Enterprise Solutions",
}

var Currencies = []string{"USD", "EUR", "GBP", "CAD", "AUD"}

var PaymentTerms = []string{"Net 30", "Net 60", "Net 90", "COD", "2/10 Net 30", "Due on Receipt"}

var Departments = []string{"IT", "Operations", "Finance", "HR", "Logistics"}

var Locations = []string{"New York", "Los Angeles", "Chicago", "Toronto", "London", "Sydney"}

var ApprovalStatuses = []string{"Pending", "Approved", "Rejected"}

var Priorities = []string{"Low", "Medium", "High", "Urgent"}

// Notes includes the empty string as one of its outcomes.
var Notes = []string{
	"",
	"Urgent delivery required",
	"Special packaging needed",
	"Standard delivery",
	"Quality inspection required",
}

var Creators = []string{"John Smith", "Sarah Johnson", "Mike Davis", "Emily Chen", "Robert Wilson"}

var Assignees = []string{"Alice Brown", "David Lee", "Lisa Anderson", "Tom Martinez", "Jessica White"}

// =============================================================================
// COLUMN LOOKUP
// =============================================================================

// Enumerated maps each enumerated output column to its allowed values.
// Columns not listed here are free-form or computed.
var Enumerated = map[string][]string{
	"Vendor":          Vendors,
	"Currency":        Currencies,
	"Payment Terms":   PaymentTerms,
	"Department":      Departments,
	"Location":        Locations,
	"Approval Status": ApprovalStatuses,
	"Priority":        Priorities,
	"Notes":           Notes,
	"Created By":      Creators,
	"Assigned To":     Assignees,
}

// Contains reports whether value is one of the allowed values of column.
// It returns false for columns that are not enumerated.
func Contains(column, value string) bool {
	values, ok := Enumerated[column]
	if !ok {
		return false
	}
	return slices.Contains(values, value)
}
