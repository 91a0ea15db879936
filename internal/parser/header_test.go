package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headerText = `Tax Invoice
Invoice #: INV-1042
Invoice Date: 01 Jan 2024
Due Date: 31 Jan 2024
GSTIN 29AABCU9603R1ZX
Place of Supply: 29-KARNATAKA
Total ₹1,180.00
`

func TestExtractHeader(t *testing.T) {
	rec := ExtractHeader(headerText)

	require.NotNil(t, rec.InvoiceNumber)
	assert.Equal(t, "INV-1042", *rec.InvoiceNumber)
	require.NotNil(t, rec.InvoiceDate)
	assert.Equal(t, "01 Jan 2024", *rec.InvoiceDate)
	require.NotNil(t, rec.DueDate)
	assert.Equal(t, "31 Jan 2024", *rec.DueDate)
	require.NotNil(t, rec.GSTIN)
	assert.Equal(t, "29AABCU9603R1ZX", *rec.GSTIN)
	require.NotNil(t, rec.TotalAmount)
	assert.Equal(t, 1180.00, *rec.TotalAmount)
	require.NotNil(t, rec.PlaceOfSupply)
	assert.Equal(t, "29-KARNATAKA", *rec.PlaceOfSupply)
	assert.False(t, rec.HasIGST)
}

func TestExtractHeader_MissingFieldsAreNil(t *testing.T) {
	rec := ExtractHeader("a page with none of the anchored fields")

	assert.Nil(t, rec.InvoiceNumber)
	assert.Nil(t, rec.InvoiceDate)
	assert.Nil(t, rec.DueDate)
	assert.Nil(t, rec.GSTIN)
	assert.Nil(t, rec.TotalAmount)
	assert.Nil(t, rec.PlaceOfSupply)
	assert.False(t, rec.HasIGST)
}

func TestExtractHeader_IGSTMarker(t *testing.T) {
	assert.True(t, ExtractHeader("... IGST @ 18% ...").HasIGST)
	assert.True(t, ExtractHeader("... igst 12% ...").HasIGST)
	assert.False(t, ExtractHeader("... SGST and CGST only ...").HasIGST)
}

func TestExtractHeader_UnparseableTotalIsNil(t *testing.T) {
	// pattern matches but the token is not a number after normalization
	rec := ExtractHeader("Total ₹,.,\n")
	assert.Nil(t, rec.TotalAmount)
}

// Date strings round-trip through the printed layout: parse → format → parse
// is idempotent for all valid "day month year" values.
func TestDateLayoutRoundTrip(t *testing.T) {
	const layout = "2 Jan 2006"
	for _, s := range []string{
		"01 Jan 2024", "1 Jan 2024", "29 Feb 2024", "31 Dec 1999", "15 Aug 1947",
	} {
		first, err := time.Parse(layout, s)
		require.NoError(t, err, s)
		second, err := time.Parse(layout, first.Format(layout))
		require.NoError(t, err, s)
		assert.True(t, first.Equal(second), s)
	}
}
