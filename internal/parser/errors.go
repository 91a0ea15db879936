package parser

import "errors"

// Document-level fatal errors. Everything below this level (a pattern that
// does not match, a number that does not convert) nils the affected field and
// keeps going.
var (
	// ErrNoText is returned when the page text is empty even after the OCR
	// fallback has run.
	ErrNoText = errors.New("no text found in document")

	// ErrItemTableMissing is returned when the item-table anchors cannot be
	// located in the page text.
	ErrItemTableMissing = errors.New("item table anchors not found")
)
