package parser

import (
	"regexp"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

// Header fields are pulled by independent anchored patterns over the whole
// page text; first match wins, no match leaves the field nil.
var (
	reInvoiceNumber = regexp.MustCompile(`Invoice #:\s*(\S+)`)
	reInvoiceDate   = regexp.MustCompile(`Invoice Date:\s*(\d{1,2} \w+ \d{4})`)
	reDueDate       = regexp.MustCompile(`Due Date:\s*(\d{1,2} \w+ \d{4})`)
	reGSTIN         = regexp.MustCompile(`GSTIN\s*(\w+)`)
	reTotalAmount   = regexp.MustCompile(`Total\s*₹([\d,\.]+)`)
	rePlaceOfSupply = regexp.MustCompile(`(\d{2}-[A-Z]*\s*[A-Z]*)`)
	reIGST          = regexp.MustCompile(`(?i)igst`)
)

func findFirst(re *regexp.Regexp, text string) *string {
	if m := re.FindStringSubmatch(text); m != nil {
		return models.String(m[1])
	}
	return nil
}

// ExtractHeader pulls the document-level scalar fields from the page text.
func ExtractHeader(pageText string) models.InvoiceRecord {
	rec := models.InvoiceRecord{
		InvoiceNumber: findFirst(reInvoiceNumber, pageText),
		InvoiceDate:   findFirst(reInvoiceDate, pageText),
		DueDate:       findFirst(reDueDate, pageText),
		GSTIN:         findFirst(reGSTIN, pageText),
		PlaceOfSupply: findFirst(rePlaceOfSupply, pageText),
		// absence of any IGST marker means the intra-state SGST/CGST regime
		HasIGST: reIGST.MatchString(pageText),
	}
	if tok := findFirst(reTotalAmount, pageText); tok != nil {
		rec.TotalAmount = parseAmount(*tok)
	}
	return rec
}
