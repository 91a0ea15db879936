// Package report persists extraction results: per-document JSON summaries,
// the aggregated CSV of accepted documents, and the batch report file.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

// WriteJSON writes the summary as <dir>/<stem>.json and returns the path.
// The serialized form round-trips: re-parsing it yields field-for-field
// equality with the original summary.
func WriteJSON(dir, stem string, summary *models.SaleSummary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, stem+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
