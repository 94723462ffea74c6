// =============================================================================
// Purchase Order Generator - XML Writer Module
// =============================================================================
//
// This module renders the dataset as an XML document. Unlike the CSV, the XML
// keeps the line items each order was built from.
//
// XML STRUCTURE:
//
//   <purchaseOrders count="2">             <!-- Root element -->
//     <purchaseOrder n="1">                <!-- Order element with index -->
//       <PONumber>PO-2026-12345</PONumber> <!-- One element per column -->
//       <Vendor>Acme Corp</Vendor>
//       ...
//       <Notes/>                           <!-- Empty values self-close -->
//       <lineItem n="1">                   <!-- Line item with global index -->
//         <Name>Laptop</Name>
//         <Quantity>2</Quantity>
//       </lineItem>
//     </purchaseOrder>
//     <purchaseOrder n="2">
//       ...
//       <lineItem n="2">                   <!-- Global numbering continues -->
//     </purchaseOrder>
//   </purchaseOrders>
//
// Element names are the column names with spaces removed.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strconv"
	"strings"

	"github.com/ginjaninja78/po-data-generator/internal/generator"
)

// ErrNoRecords is returned when there is nothing to write.
var ErrNoRecords = errors.New("no records to export")

const (
	rootElement     = "purchaseOrders"
	orderElement    = "purchaseOrder"
	lineItemElement = "lineItem"
	indexAttribute  = "n"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// LineItemNumberingGlobal determines if line item numbering is global.
	// If true: line items are numbered 1, 2, 3, 4... across all orders.
	// If false: line items restart at 1 for each order.
	// Default: true
	LineItemNumberingGlobal bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                  "  ",
		IncludeXMLDeclaration:   true,
		LineItemNumberingGlobal: true,
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Marshal renders records as XML with default options.
func Marshal(records []generator.PurchaseOrder) ([]byte, error) {
	return MarshalWithOptions(records, DefaultGenerateOptions())
}

// MarshalWithOptions renders records as XML.
//
// RETURNS:
//   - The XML document as a byte slice.
//   - ErrNoRecords if records is empty.
//
// GENERATION PROCESS:
//  1. Create the root element with the record count
//  2. For each order:
//     a. Create the order element with index attribute
//     b. Add one element per column
//     c. Add a line item element per item
//  3. Write the tree with indentation
func MarshalWithOptions(records []generator.PurchaseOrder, options GenerateOptions) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	doc := buildDocument(records, options)

	var buffer bytes.Buffer
	if options.IncludeXMLDeclaration {
		buffer.WriteString(xml.Header)
	}
	writeElement(&buffer, doc, options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// Element represents a generic XML element.
type Element struct {
	Name       string
	Attributes []xml.Attr
	Value      string
	Children   []Element
}

// buildDocument constructs the XML document structure.
func buildDocument(records []generator.PurchaseOrder, options GenerateOptions) Element {
	doc := Element{
		Name:       rootElement,
		Attributes: []xml.Attr{attr("count", len(records))},
		Children:   make([]Element, 0, len(records)),
	}

	lineItemIndex := 1
	for i, record := range records {
		if !options.LineItemNumberingGlobal {
			lineItemIndex = 1
		}
		doc.Children = append(doc.Children, buildOrderElement(record, i+1, &lineItemIndex))
	}

	return doc
}

// buildOrderElement constructs a purchase order element. lineItemIndex is
// advanced past the order's line items.
func buildOrderElement(record generator.PurchaseOrder, index int, lineItemIndex *int) Element {
	element := Element{
		Name:       orderElement,
		Attributes: []xml.Attr{attr(indexAttribute, index)},
		Children:   make([]Element, 0, len(generator.Columns)+len(record.Items)),
	}

	for _, column := range generator.Columns {
		value, _ := record.Value(column)
		element.Children = append(element.Children, simpleElement(TagName(column), value))
	}

	for _, item := range record.Items {
		element.Children = append(element.Children, buildLineItemElement(item, *lineItemIndex))
		*lineItemIndex++
	}

	return element
}

// buildLineItemElement constructs a line item element.
func buildLineItemElement(item generator.LineItem, index int) Element {
	return Element{
		Name:       lineItemElement,
		Attributes: []xml.Attr{attr(indexAttribute, index)},
		Children: []Element{
			simpleElement("Name", item.Name),
			simpleElement("Category", item.Category),
			simpleElement("Quantity", strconv.Itoa(item.Quantity)),
			simpleElement("UnitPrice", generator.FormatMoney(item.UnitPrice)),
			simpleElement("TotalPrice", generator.FormatMoney(item.TotalPrice)),
		},
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// TagName converts a column name to an element name.
func TagName(column string) string {
	return strings.ReplaceAll(column, " ", "")
}

func simpleElement(name, value string) Element {
	return Element{Name: name, Value: value}
}

func attr(name string, value int) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: strconv.Itoa(value)}
}

// writeElement writes an element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element Element, indent string, level int) {
	buffer.WriteString(strings.Repeat(indent, level))

	buffer.WriteString("<")
	buffer.WriteString(element.Name)
	for _, a := range element.Attributes {
		buffer.WriteString(" ")
		buffer.WriteString(a.Name.Local)
		buffer.WriteString(`="`)
		escapeXML(buffer, a.Value)
		buffer.WriteString(`"`)
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		escapeXML(buffer, element.Value)
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}
		buffer.WriteString(strings.Repeat(indent, level))
	}

	buffer.WriteString("</")
	buffer.WriteString(element.Name)
	buffer.WriteString(">\n")
}

// escapeXML writes s with XML special characters escaped.
func escapeXML(buffer *bytes.Buffer, s string) {
	// EscapeText only fails when the writer does; bytes.Buffer never does.
	_ = xml.EscapeText(buffer, []byte(s))
}
