package ocr

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
)

// Preprocessor renders PDF pages to images and binarizes them for better OCR
// reading. Both steps shell out to external tools (pdftoppm, ImageMagick);
// a failed enhancement degrades gracefully to the unenhanced image.
type Preprocessor struct {
	dpi int
}

// NewPreprocessor creates a preprocessor rendering at the given resolution.
func NewPreprocessor(dpi int) *Preprocessor {
	if dpi <= 0 {
		dpi = 200
	}
	return &Preprocessor{dpi: dpi}
}

// RenderPages rasterizes the PDF at pdfPath into PNG files inside a temp
// directory and returns their paths in page order. The caller removes the
// directory when done.
func (p *Preprocessor) RenderPages(pdfPath string) ([]string, string, error) {
	tmpDir, err := os.MkdirTemp("", "invoice-pages-")
	if err != nil {
		return nil, "", err
	}

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", strconv.Itoa(p.dpi), "-png", pdfPath, prefix)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, "", fmt.Errorf("pdftoppm failed: %w - %s", err, stderr.String())
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil || len(pages) == 0 {
		os.RemoveAll(tmpDir)
		return nil, "", fmt.Errorf("no pages rendered from %s", pdfPath)
	}
	sort.Strings(pages)
	return pages, tmpDir, nil
}

// Binarize applies grayscale conversion and a fixed threshold to a page
// image, matching the preprocessing the extraction patterns were tuned on.
// If ImageMagick is unavailable or fails, the original image path is returned.
func (p *Preprocessor) Binarize(imagePath string) string {
	outputPath := imagePath + ".bin.png"

	args := []string{
		imagePath,
		"-colorspace", "Gray",
		// fixed binary threshold (150/255)
		"-threshold", "59%",
		outputPath,
	}

	// 'magick' on ImageMagick 7, 'convert' on 6
	var cmd *exec.Cmd
	if _, err := exec.LookPath("magick"); err == nil {
		cmd = exec.Command("magick", args...)
	} else if _, err := exec.LookPath("convert"); err == nil {
		cmd = exec.Command("convert", args...)
	} else {
		return imagePath
	}

	if err := cmd.Run(); err != nil {
		return imagePath
	}
	return outputPath
}
