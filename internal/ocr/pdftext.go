// Package ocr acquires the raw page text of a source PDF: native text-layer
// extraction first, an external OCR pipeline as fallback for scanned pages.
package ocr

import (
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ErrMultiplePages is returned before any parsing when the source document
// has more than one page. Single-page sources are a precondition of the
// positional parser.
var ErrMultiplePages = errors.New("document has more than one page")

// ExtractText reads the text layer of the single page of the PDF at path.
// A scanned document with no text layer returns an empty string and no error;
// callers fall back to OCR in that case.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	if r.NumPage() > 1 {
		return "", ErrMultiplePages
	}
	if r.NumPage() == 0 {
		return "", nil
	}

	text, err := r.Page(1).GetPlainText(nil)
	if err != nil {
		// unreadable text layer, let OCR have a try
		return "", nil
	}
	return text, nil
}
