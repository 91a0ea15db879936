package report

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// FileAccuracy pairs a processed file with its confidence as a percentage.
type FileAccuracy struct {
	FileName string
	Percent  float64
}

// BatchReport accumulates the outcome of one batch run.
type BatchReport struct {
	Errors     []string
	Accuracies []FileAccuracy
}

// AddError records a per-file failure; failures never abort the batch.
func (r *BatchReport) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddAccuracy records a scored file.
func (r *BatchReport) AddAccuracy(fileName string, confidence float64) {
	r.Accuracies = append(r.Accuracies, FileAccuracy{FileName: fileName, Percent: confidence * 100})
}

// Write renders the report to path, overwriting any previous run.
func (r *BatchReport) Write(path string) error {
	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05") + "\n")
	sb.WriteString("Errors:\n")
	for _, e := range r.Errors {
		sb.WriteString(e + "\n")
	}
	sb.WriteString("\nAccuracies:\n")
	for _, a := range r.Accuracies {
		sb.WriteString(fmt.Sprintf("%s: %.2f%%\n", a.FileName, a.Percent))
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
