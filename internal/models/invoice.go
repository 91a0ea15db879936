package models

// InvoiceRecord holds the document-level fields pulled from the page text.
// Every scalar is a pointer: a pattern that did not match leaves the field nil,
// it never fails the document.
type InvoiceRecord struct {
	InvoiceNumber *string  `json:"invoice_number"`
	InvoiceDate   *string  `json:"invoice_date"` // literal "day month year", e.g. "01 Jan 2024"
	DueDate       *string  `json:"due_date"`
	GSTIN         *string  `json:"gstin"`
	TotalAmount   *float64 `json:"total_amount"`
	PlaceOfSupply *string  `json:"place_of_supply"`
	HasIGST       bool     `json:"has_igst"`
}

// LineItem is one row of the purchased-goods table. The tax component pairs
// are mutually exclusive: either the IGST pair is set, or both SGST and CGST
// are set (even split of the tax amount), depending on HasIGST.
type LineItem struct {
	Description   string   `json:"description"`
	Rate          *float64 `json:"rate"`
	CostPrice     *float64 `json:"cost_price"`
	Discount      *string  `json:"discount"` // e.g. "-10%"
	Quantity      *string  `json:"quantity"` // free-form, e.g. "5 PCS"
	TaxableValue  *float64 `json:"taxable_value"`
	TaxAmount     *float64 `json:"tax_amount"`
	TaxPercentage *float64 `json:"tax_percentage"`
	Amount        *float64 `json:"amount"`

	SGSTAmount *float64 `json:"sgst_amount"`
	CGSTAmount *float64 `json:"cgst_amount"`
	IGSTAmount *float64 `json:"igst_amount"`
	SGSTRate   *float64 `json:"sgst_rate"`
	CGSTRate   *float64 `json:"cgst_rate"`
	IGSTRate   *float64 `json:"igst_rate"`
}

// SaleSummary is the full parsed document: header plus line items in document
// order. It is the unit of output, persistence and scoring.
type SaleSummary struct {
	InvoiceRecord
	Items []LineItem `json:"items"`
}

// ScoreBreakdown carries the five partial scores awarded by the cross-checker.
// Each value is in [0, weight]; the weights sum to 100.
type ScoreBreakdown struct {
	InvoiceNumber float64 `json:"invoice_number"`
	DateChecks    float64 `json:"date_checks"`
	TotalAmount   float64 `json:"total_amount"`
	TaxPercentage float64 `json:"tax_percentage"`
	Quantity      float64 `json:"quantity"`
}

// Total returns the raw awarded score out of 100.
func (b ScoreBreakdown) Total() float64 {
	return b.InvoiceNumber + b.DateChecks + b.TotalAmount + b.TaxPercentage + b.Quantity
}

// Float64 returns a pointer to v. Convenience for building nullable fields.
func Float64(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
