package xmlwriter

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/po-data-generator/internal/generator"
)

type document struct {
	XMLName xml.Name `xml:"purchaseOrders"`
	Count   int      `xml:"count,attr"`
	Orders  []struct {
		N          int    `xml:"n,attr"`
		PONumber   string `xml:"PONumber"`
		Vendor     string `xml:"Vendor"`
		Notes      string `xml:"Notes"`
		Quantity   int    `xml:"Quantity"`
		GrandTotal string `xml:"GrandTotal"`
		LineItems  []struct {
			N        int    `xml:"n,attr"`
			Name     string `xml:"Name"`
			Quantity int    `xml:"Quantity"`
		} `xml:"lineItem"`
	} `xml:"purchaseOrder"`
}

func build(t *testing.T, n int) []generator.PurchaseOrder {
	t.Helper()
	g := generator.NewSeeded(21, generator.WithClock(func() time.Time {
		return time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	}))
	records, err := g.Build(n, nil)
	require.NoError(t, err)
	return records
}

func TestMarshal(t *testing.T) {
	records := build(t, 12)

	data, err := Marshal(records)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))

	var doc document
	require.NoError(t, xml.Unmarshal(data, &doc))

	assert.Equal(t, 12, doc.Count)
	require.Len(t, doc.Orders, 12)

	next := 1
	for i, order := range doc.Orders {
		record := records[i]
		assert.Equal(t, i+1, order.N)
		assert.Equal(t, record.PONumber, order.PONumber)
		assert.Equal(t, record.Vendor, order.Vendor)
		assert.Equal(t, record.Notes, order.Notes)
		assert.Equal(t, generator.FormatMoney(record.GrandTotal), order.GrandTotal)

		require.Len(t, order.LineItems, len(record.Items))
		sum := 0
		for _, item := range order.LineItems {
			assert.Equal(t, next, item.N)
			next++
			sum += item.Quantity
		}
		assert.Equal(t, order.Quantity, sum)
	}
}

func TestMarshalWithOptions_perOrderNumbering(t *testing.T) {
	options := DefaultGenerateOptions()
	options.LineItemNumberingGlobal = false
	options.IncludeXMLDeclaration = false

	data, err := MarshalWithOptions(build(t, 5), options)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<purchaseOrders"))

	var doc document
	require.NoError(t, xml.Unmarshal(data, &doc))
	for _, order := range doc.Orders {
		require.NotEmpty(t, order.LineItems)
		assert.Equal(t, 1, order.LineItems[0].N)
	}
}

func TestMarshal_escapesAndSelfCloses(t *testing.T) {
	records := build(t, 1)
	records[0].Vendor = `Smith & "Sons" <Ltd>`
	records[0].Notes = ""

	data, err := Marshal(records)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "<Notes/>")
	assert.Contains(t, out, "Smith &amp; &#34;Sons&#34; &lt;Ltd&gt;")

	var doc document
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Equal(t, `Smith & "Sons" <Ltd>`, doc.Orders[0].Vendor)
}

func TestMarshal_noRecords(t *testing.T) {
	_, err := Marshal(nil)
	assert.True(t, errors.Is(err, ErrNoRecords))
}

func TestTagName(t *testing.T) {
	assert.Equal(t, "PONumber", TagName(generator.ColPONumber))
	assert.Equal(t, "ExpectedDelivery", TagName(generator.ColExpectedDelivery))
	assert.Equal(t, "Vendor", TagName(generator.ColVendor))
}
