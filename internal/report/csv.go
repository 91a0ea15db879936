package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

// Row is the flat per-document aggregate appended to the outputs CSV:
// component tax sums over all line items plus derived effective rates.
type Row struct {
	TaxableValue  decimal.Decimal
	SGSTAmount    decimal.Decimal
	CGSTAmount    decimal.Decimal
	IGSTAmount    decimal.Decimal
	SGSTRate      *decimal.Decimal
	CGSTRate      *decimal.Decimal
	IGSTRate      *decimal.Decimal
	TaxAmount     decimal.Decimal
	TaxRate       *decimal.Decimal
	FinalAmount   *float64
	InvoiceNumber *string
	InvoiceDate   *string
}

var csvHeader = []string{
	"taxable_value", "sgst_amount", "cgst_amount", "igst_amount",
	"sgst_rate", "cgst_rate", "igst_rate",
	"tax_amount", "tax_rate", "final_amount", "invoice_number", "invoice_date",
}

// BuildRow aggregates the line items of an accepted summary. Sums skip nil
// fields; each sum is rounded to 2 decimals. Effective rates are the
// component sums as a percentage of the aggregate taxable value (the overall
// tax rate against the final amount); a zero or missing denominator leaves
// the rate nil.
func BuildRow(summary *models.SaleSummary) Row {
	row := Row{
		FinalAmount:   summary.TotalAmount,
		InvoiceNumber: summary.InvoiceNumber,
		InvoiceDate:   summary.InvoiceDate,
	}

	for _, item := range summary.Items {
		row.TaxableValue = addIfSet(row.TaxableValue, item.TaxableValue)
		row.SGSTAmount = addIfSet(row.SGSTAmount, item.SGSTAmount)
		row.CGSTAmount = addIfSet(row.CGSTAmount, item.CGSTAmount)
		row.IGSTAmount = addIfSet(row.IGSTAmount, item.IGSTAmount)
		row.TaxAmount = addIfSet(row.TaxAmount, item.TaxAmount)
	}
	row.TaxableValue = row.TaxableValue.Round(2)
	row.SGSTAmount = row.SGSTAmount.Round(2)
	row.CGSTAmount = row.CGSTAmount.Round(2)
	row.IGSTAmount = row.IGSTAmount.Round(2)
	row.TaxAmount = row.TaxAmount.Round(2)

	row.SGSTRate = percentOf(row.SGSTAmount, row.TaxableValue)
	row.CGSTRate = percentOf(row.CGSTAmount, row.TaxableValue)
	row.IGSTRate = percentOf(row.IGSTAmount, row.TaxableValue)
	if summary.TotalAmount != nil {
		row.TaxRate = percentOf(row.TaxAmount, decimal.NewFromFloat(*summary.TotalAmount))
	}
	return row
}

// AppendRows appends rows to the CSV at path, writing the header only when
// the file is created by this call.
func AppendRows(path string, rows []Row) error {
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := w.Write(row.record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (r Row) record() []string {
	return []string{
		r.TaxableValue.StringFixed(2),
		r.SGSTAmount.StringFixed(2),
		r.CGSTAmount.StringFixed(2),
		r.IGSTAmount.StringFixed(2),
		decimalField(r.SGSTRate),
		decimalField(r.CGSTRate),
		decimalField(r.IGSTRate),
		r.TaxAmount.StringFixed(2),
		decimalField(r.TaxRate),
		floatField(r.FinalAmount),
		stringField(r.InvoiceNumber),
		stringField(r.InvoiceDate),
	}
}

func addIfSet(sum decimal.Decimal, v *float64) decimal.Decimal {
	if v == nil {
		return sum
	}
	return sum.Add(decimal.NewFromFloat(*v))
}

func percentOf(part, whole decimal.Decimal) *decimal.Decimal {
	if whole.IsZero() {
		return nil
	}
	rate := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
	return &rate
}

func decimalField(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func floatField(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func stringField(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
