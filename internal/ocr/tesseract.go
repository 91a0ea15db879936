package ocr

import (
	"bytes"
	"fmt"
	"os/exec"
)

// Tesseract shells out to the tesseract binary. The exec route avoids the
// CGO bindings and keeps the OCR engine an optional runtime dependency.
type Tesseract struct {
	language string
}

// NewTesseract creates a tesseract wrapper for the given OCR language.
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{language: language}
}

// Available reports whether the tesseract binary can be found.
func (t *Tesseract) Available() bool {
	_, err := exec.LookPath("tesseract")
	return err == nil
}

// ExtractText runs OCR over one page image and returns the recognized text.
func (t *Tesseract) ExtractText(imagePath string) (string, error) {
	cmd := exec.Command("tesseract", imagePath, "stdout", "-l", t.language)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w - %s", err, stderr.String())
	}
	return stdout.String(), nil
}
