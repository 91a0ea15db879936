package parser

import "github.com/gstparse/invoice-extract-service/internal/models"

// DecomposeTax fills the mutually exclusive tax component pairs on item from
// its parsed tax amount and percentage. Inter-state supplies (hasIGST) carry a
// single unified IGST pair; intra-state supplies split the tax evenly between
// SGST and CGST at the same rate. No rounding happens here.
func DecomposeTax(item *models.LineItem, hasIGST bool) {
	if hasIGST {
		if item.TaxAmount != nil {
			item.IGSTAmount = models.Float64(*item.TaxAmount)
		}
		if item.TaxPercentage != nil {
			item.IGSTRate = models.Float64(*item.TaxPercentage)
		}
		return
	}

	if item.TaxAmount != nil {
		half := *item.TaxAmount / 2
		item.SGSTAmount = models.Float64(half)
		item.CGSTAmount = models.Float64(half)
	}
	if item.TaxPercentage != nil {
		item.SGSTRate = models.Float64(*item.TaxPercentage)
		item.CGSTRate = models.Float64(*item.TaxPercentage)
	}
}
