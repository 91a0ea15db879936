package ocr

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

// Engine combines native text extraction with the OCR fallback pipeline.
type Engine struct {
	pre  *Preprocessor
	tess *Tesseract
	log  zerolog.Logger
}

// NewEngine builds the text-acquisition engine from the OCR config.
func NewEngine(cfg models.OCRConfig, log zerolog.Logger) *Engine {
	return &Engine{
		pre:  NewPreprocessor(cfg.DPI),
		tess: NewTesseract(cfg.Language),
		log:  log,
	}
}

// PageText returns the text of the single page of the PDF at path. Documents
// with a text layer are read natively; scanned documents are rendered,
// binarized and run through tesseract. Multi-page documents are rejected with
// ErrMultiplePages before any extraction.
func (e *Engine) PageText(path string) (string, error) {
	text, err := ExtractText(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	e.log.Info().Str("path", path).Msg("no text layer, falling back to OCR")
	pages, tmpDir, err := e.pre.RenderPages(path)
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	var sb strings.Builder
	for _, page := range pages {
		pageText, err := e.tess.ExtractText(e.pre.Binarize(page))
		if err != nil {
			e.log.Warn().Err(err).Str("page", page).Msg("ocr failed for page")
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	if strings.TrimSpace(sb.String()) == "" {
		// parser treats "" as the fatal no-text condition
		return "", nil
	}
	return sb.String(), nil
}
