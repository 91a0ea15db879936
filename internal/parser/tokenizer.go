package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// The item table sits between the last column header of the table ("Amount"
// at end of line) and the totals section that always starts with
// "Taxable Amount".
const (
	tableHeaderAnchor = "Amount\n"
	tableFooterAnchor = "Taxable Amount"
)

// Each row starts on its own line with a row number glued to the first letter
// of the description, e.g. "1WIRELESS MOUSE ..." or "12KEYBOARD ...".
var rowMarker = regexp.MustCompile(`(?m)^\d+[A-Za-z]`)

var newlineRun = regexp.MustCompile(`[\r\n]+`)

// sliceItemTable returns the raw substring of pageText holding the line-item
// rows. Absence of either anchor is fatal for the document.
func sliceItemTable(pageText string) (string, error) {
	start := strings.Index(pageText, tableHeaderAnchor)
	if start < 0 {
		return "", fmt.Errorf("%w: header anchor %q", ErrItemTableMissing, strings.TrimSpace(tableHeaderAnchor))
	}
	start += len(tableHeaderAnchor)

	end := strings.Index(pageText[start:], tableFooterAnchor)
	if end < 0 {
		return "", fmt.Errorf("%w: footer anchor %q", ErrItemTableMissing, tableFooterAnchor)
	}
	return strings.TrimSpace(pageText[start : start+end]), nil
}

// splitCandidates cuts the item-table block into one candidate string per
// line item. A candidate begins at a row marker on a line start and runs until
// the next marker or the end of the block. The marker digits are stripped and
// line breaks inside a row are collapsed to single spaces.
//
// No markers at all is a valid state (a malformed or absent item table): the
// document simply parses with zero items and the cross-checks score it down.
func splitCandidates(itemsBlock string) []string {
	starts := rowMarker.FindAllStringIndex(itemsBlock, -1)
	if len(starts) == 0 {
		return nil
	}

	candidates := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(itemsBlock)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		row := itemsBlock[loc[0]:end]
		row = strings.TrimLeft(row, "0123456789")
		row = newlineRun.ReplaceAllString(row, " ")
		candidates = append(candidates, strings.TrimSpace(row))
	}
	return candidates
}
