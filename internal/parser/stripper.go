package parser

import (
	"regexp"
	"strings"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

// The row grammar is a fixed right-to-left sequence of typed tokens appended
// after the description:
//
//	<description> <rate> <cost price> (<discount>) <quantity><taxable><tax (pct%)><amount>
//
// Tokens are peeled off the end one at a time, each peel shrinking the
// residual so the next pattern becomes unambiguous. The peel order is
// significant: amount, taxable value, cost price and rate all share the same
// decimal format and are only told apart by position.
//
// Two patterns carry a one-token context prefix (the tail of the preceding
// number, or a word character) in place of a lookbehind; only capture group 1
// is ever removed from the residual.
var (
	reAmount   = regexp.MustCompile(`(\d{1,3}(?:,\d{2,3})*\.\d{2})$`)
	reTaxBlock = regexp.MustCompile(`\.\d{2}(\d{1,3}(?:,\d{2,3})*\.\d{2}\s\(\d{1,2}%\))$`)
	reTaxable  = regexp.MustCompile(`\w(\d{1,3}(?:,\d{2,3})*\.\d{2})$`)
	reQuantity = regexp.MustCompile(`(\d+|\d+\s[A-Z]+)$`)
	reDiscount = regexp.MustCompile(`(\(-\d{1,2}%\)|\(-\d{1,2}\.\d{1,2}%\))$`)

	// pieces of a matched tax block, e.g. "162.00 (18%)"
	reTaxPercent = regexp.MustCompile(`\((\d{1,2})%\)$`)
	reTaxValue   = regexp.MustCompile(`\d{1,3}(?:,\d{2,3})*\.\d{2}`)
)

// peel extracts the trailing token matched by group 1 of re and returns the
// shortened residual. When the pattern does not match, the residual is
// returned unchanged and ok is false — a missing optional token is a no-op,
// not an error.
func peel(residual string, re *regexp.Regexp) (token, rest string, ok bool) {
	loc := re.FindStringSubmatchIndex(residual)
	if loc == nil {
		return "", residual, false
	}
	return residual[loc[2]:loc[3]], strings.TrimSpace(residual[:loc[2]]), true
}

// StripFields decomposes one tokenized row candidate into a line item by
// peeling typed trailing tokens right to left. Whatever remains after all
// peels is the item description. Tax component fields are left for
// DecomposeTax; they depend on document-level state.
func StripFields(candidate string) models.LineItem {
	var item models.LineItem
	rest := strings.TrimSpace(candidate)

	if tok, r, ok := peel(rest, reAmount); ok {
		item.Amount = parseAmount(tok)
		rest = r
	}

	if tok, r, ok := peel(rest, reTaxBlock); ok {
		if m := reTaxPercent.FindStringSubmatch(tok); m != nil {
			item.TaxPercentage = parseAmount(m[1])
		}
		if v := reTaxValue.FindString(tok); v != "" {
			item.TaxAmount = parseAmount(v)
		}
		rest = r
	}

	if tok, r, ok := peel(rest, reTaxable); ok {
		item.TaxableValue = parseAmount(tok)
		rest = r
	}

	if tok, r, ok := peel(rest, reQuantity); ok {
		item.Quantity = models.String(tok)
		rest = r
	}

	if tok, r, ok := peel(rest, reDiscount); ok {
		item.Discount = models.String(strings.Trim(tok, "()"))
		rest = r
	}

	if tok, r, ok := peel(rest, reAmount); ok {
		item.CostPrice = parseAmount(tok)
		rest = r
	}

	if tok, r, ok := peel(rest, reAmount); ok {
		item.Rate = parseAmount(tok)
		rest = r
	} else if item.CostPrice != nil {
		// no separate per-unit rate printed: rate and cost price are the same
		// economic figure
		v := *item.CostPrice
		item.Rate = &v
	}

	item.Description = strings.TrimSpace(rest)
	return item
}
