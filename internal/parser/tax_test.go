package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

func TestDecomposeTax_IGST(t *testing.T) {
	item := models.LineItem{
		TaxAmount:     models.Float64(180.00),
		TaxPercentage: models.Float64(18),
	}
	DecomposeTax(&item, true)

	require.NotNil(t, item.IGSTAmount)
	assert.Equal(t, 180.00, *item.IGSTAmount)
	require.NotNil(t, item.IGSTRate)
	assert.Equal(t, 18.0, *item.IGSTRate)

	assert.Nil(t, item.SGSTAmount)
	assert.Nil(t, item.CGSTAmount)
	assert.Nil(t, item.SGSTRate)
	assert.Nil(t, item.CGSTRate)
}

func TestDecomposeTax_IntraStateSplit(t *testing.T) {
	item := models.LineItem{
		TaxAmount:     models.Float64(181.00), // odd amount, halves stay unrounded
		TaxPercentage: models.Float64(18),
	}
	DecomposeTax(&item, false)

	require.NotNil(t, item.SGSTAmount)
	require.NotNil(t, item.CGSTAmount)
	assert.Equal(t, 90.5, *item.SGSTAmount)
	assert.Equal(t, *item.SGSTAmount, *item.CGSTAmount)
	assert.Equal(t, *item.TaxAmount, *item.SGSTAmount+*item.CGSTAmount)

	require.NotNil(t, item.SGSTRate)
	require.NotNil(t, item.CGSTRate)
	assert.Equal(t, 18.0, *item.SGSTRate)
	assert.Equal(t, 18.0, *item.CGSTRate)

	assert.Nil(t, item.IGSTAmount)
	assert.Nil(t, item.IGSTRate)
}

// Exactly one tax regime is populated per item whenever the tax amount
// parsed, regardless of the document-level flag.
func TestDecomposeTax_RegimesAreExclusive(t *testing.T) {
	for _, hasIGST := range []bool{true, false} {
		item := models.LineItem{
			TaxAmount:     models.Float64(100),
			TaxPercentage: models.Float64(5),
		}
		DecomposeTax(&item, hasIGST)

		unified := item.IGSTAmount != nil
		regional := item.SGSTAmount != nil && item.CGSTAmount != nil
		assert.NotEqual(t, unified, regional, "hasIGST=%v", hasIGST)
	}
}

func TestDecomposeTax_NilTaxLeavesComponentsNil(t *testing.T) {
	var item models.LineItem
	DecomposeTax(&item, false)

	assert.Nil(t, item.SGSTAmount)
	assert.Nil(t, item.CGSTAmount)
	assert.Nil(t, item.IGSTAmount)
	assert.Nil(t, item.SGSTRate)
	assert.Nil(t, item.CGSTRate)
	assert.Nil(t, item.IGSTRate)
}
