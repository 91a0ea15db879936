// Package parser converts the extracted text of a single-page GST sales
// invoice into a structured SaleSummary: header fields plus one record per
// line item, recovered by right-to-left anchored pattern stripping.
package parser

import (
	"github.com/rs/zerolog"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

// Parser parses one document at a time. It holds no state between documents;
// a single instance is safe to reuse across a batch.
type Parser struct {
	log zerolog.Logger
}

// New returns a Parser logging to log. Pass zerolog.Nop() to detach logging;
// parsing behavior never depends on the sink.
func New(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// Parse converts raw page text into a SaleSummary.
//
// Only document-level failures are returned as errors: empty page text
// (ErrNoText) and missing item-table anchors (ErrItemTableMissing). A header
// pattern that does not match or a row token that does not convert nils that
// one field and parsing continues.
func (p *Parser) Parse(pageText string) (*models.SaleSummary, error) {
	if pageText == "" {
		return nil, ErrNoText
	}

	header := ExtractHeader(pageText)
	p.log.Debug().
		Interface("invoice_number", header.InvoiceNumber).
		Interface("invoice_date", header.InvoiceDate).
		Interface("due_date", header.DueDate).
		Interface("gstin", header.GSTIN).
		Interface("total_amount", header.TotalAmount).
		Interface("place_of_supply", header.PlaceOfSupply).
		Bool("has_igst", header.HasIGST).
		Msg("extracted header fields")

	itemsBlock, err := sliceItemTable(pageText)
	if err != nil {
		return nil, err
	}

	candidates := splitCandidates(itemsBlock)
	if len(candidates) == 0 {
		p.log.Warn().Msg("no line items found in item table")
	}

	items := make([]models.LineItem, 0, len(candidates))
	for i, cand := range candidates {
		item := StripFields(cand)
		DecomposeTax(&item, header.HasIGST)
		p.log.Debug().
			Int("row", i+1).
			Str("candidate", cand).
			Str("description", item.Description).
			Interface("amount", item.Amount).
			Interface("tax_amount", item.TaxAmount).
			Interface("tax_percentage", item.TaxPercentage).
			Interface("taxable_value", item.TaxableValue).
			Interface("quantity", item.Quantity).
			Msg("stripped line item")
		items = append(items, item)
	}

	p.log.Info().Int("items", len(items)).Msg("document parsed")
	return &models.SaleSummary{InvoiceRecord: header, Items: items}, nil
}
