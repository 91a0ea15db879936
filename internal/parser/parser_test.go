package parser

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

const samplePageText = `Tax Invoice
Invoice #: INV-1042
Invoice Date: 01 Jan 2024
Due Date: 31 Jan 2024
GSTIN 29AABCU9603R1ZX
Place of Supply: 29-KARNATAKA
#Item Rate / Item QtyTaxable ValueTax AmountAmount
1WIRELESS MOUSE 500.00 (-10%)2 PCS900.00162.00 (18%)1,062.00
2KEYBOARD 100.00100.00 1 PC100.0018.00 (18%)118.00
Taxable Amount 1,000.00
Total ₹1,180.00
`

func TestParse(t *testing.T) {
	summary, err := New(zerolog.Nop()).Parse(samplePageText)
	require.NoError(t, err)

	require.NotNil(t, summary.InvoiceNumber)
	assert.Equal(t, "INV-1042", *summary.InvoiceNumber)
	require.NotNil(t, summary.TotalAmount)
	assert.Equal(t, 1180.00, *summary.TotalAmount)
	assert.False(t, summary.HasIGST)

	require.Len(t, summary.Items, 2)

	first := summary.Items[0]
	assert.Equal(t, "WIRELESS MOUSE", first.Description)
	require.NotNil(t, first.Amount)
	assert.Equal(t, 1062.00, *first.Amount)
	require.NotNil(t, first.Discount)
	assert.Equal(t, "-10%", *first.Discount)

	// intra-state document: tax split evenly between SGST and CGST
	require.NotNil(t, first.SGSTAmount)
	require.NotNil(t, first.CGSTAmount)
	assert.Equal(t, 81.00, *first.SGSTAmount)
	assert.Equal(t, 81.00, *first.CGSTAmount)
	assert.Nil(t, first.IGSTAmount)

	second := summary.Items[1]
	assert.Equal(t, "KEYBOARD", second.Description)
	require.NotNil(t, second.Rate)
	assert.Equal(t, 100.00, *second.Rate)
	require.NotNil(t, second.Quantity)
	assert.Equal(t, "1 PC", *second.Quantity)
}

func TestParse_IGSTDocument(t *testing.T) {
	text := `Invoice #: INV-7
IGST
#Item Rate / Item QtyTaxable ValueTax AmountAmount
1DRIVE 900.00 1 PC900.00162.00 (18%)1,062.00
Taxable Amount 900.00
Total ₹1,062.00
`
	summary, err := New(zerolog.Nop()).Parse(text)
	require.NoError(t, err)
	assert.True(t, summary.HasIGST)

	require.Len(t, summary.Items, 1)
	item := summary.Items[0]
	require.NotNil(t, item.IGSTAmount)
	assert.Equal(t, 162.00, *item.IGSTAmount)
	require.NotNil(t, item.IGSTRate)
	assert.Equal(t, 18.0, *item.IGSTRate)
	assert.Nil(t, item.SGSTAmount)
	assert.Nil(t, item.CGSTAmount)
}

func TestParse_EmptyTextIsFatal(t *testing.T) {
	_, err := New(zerolog.Nop()).Parse("")
	require.ErrorIs(t, err, ErrNoText)
}

func TestParse_MissingItemTableIsFatal(t *testing.T) {
	_, err := New(zerolog.Nop()).Parse("Invoice #: INV-1\nno table at all\n")
	require.ErrorIs(t, err, ErrItemTableMissing)
}

func TestParse_EmptyItemTableIsNotFatal(t *testing.T) {
	text := "Invoice #: INV-1\n#Item Rate / Item QtyTaxable ValueTax AmountAmount\n" +
		"unreadable scribbles\nTaxable Amount\nTotal ₹100.00\n"

	summary, err := New(zerolog.Nop()).Parse(text)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

// The persisted JSON form re-parses to field-for-field equality.
func TestSaleSummaryJSONRoundTrip(t *testing.T) {
	summary, err := New(zerolog.Nop()).Parse(samplePageText)
	require.NoError(t, err)

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var restored models.SaleSummary
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, *summary, restored)
}
