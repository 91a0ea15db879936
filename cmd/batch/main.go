// Command batch processes a directory of single-page invoice PDFs: each file
// is extracted, parsed and scored; accepted documents are written out as JSON
// summaries plus one aggregated CSV row, and a report file lists errors and
// per-file accuracies. Per-file failures never abort the batch.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gstparse/invoice-extract-service/internal/logging"
	"github.com/gstparse/invoice-extract-service/internal/models"
	"github.com/gstparse/invoice-extract-service/internal/ocr"
	"github.com/gstparse/invoice-extract-service/internal/parser"
	"github.com/gstparse/invoice-extract-service/internal/report"
	"github.com/gstparse/invoice-extract-service/internal/scorer"
)

func main() {
	inputDir := flag.String("input-dir", "invoices", "directory of input PDF files")
	outputDir := flag.String("output-dir", "extracts", "directory for extracted data")
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(config.Log)

	info, err := os.Stat(*inputDir)
	if err != nil || !info.IsDir() {
		log.Fatal().Str("dir", *inputDir).Msg("input directory does not exist or is not a directory")
	}

	if err := processDirectory(config, log, *inputDir, *outputDir); err != nil {
		log.Fatal().Err(err).Msg("batch failed")
	}
}

func processDirectory(config *models.Config, log zerolog.Logger, inputDir, outputDir string) error {
	jsonDir := filepath.Join(outputDir, "sale_info_json")

	files, err := filepath.Glob(filepath.Join(inputDir, "*.pdf"))
	if err != nil {
		return err
	}

	engine := ocr.NewEngine(config.OCR, log)
	check := scorer.New(config.Scoring, log)

	var batch report.BatchReport
	var rows []report.Row

	for _, path := range files {
		name := filepath.Base(path)
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		log.Info().Str("file", name).Msg("processing")

		summary, confidence, err := processFile(config, log, engine, path, stem)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("extraction failed")
			batch.AddError("Error processing %s: %v", name, err)
			continue
		}

		batch.AddAccuracy(name, confidence)
		if check.NeedsReview(confidence) {
			log.Warn().Str("file", name).Float64("confidence", confidence).Msg("below acceptance threshold, marked for review")
			batch.AddError("Accuracy below %.0f%% for %s", config.Scoring.AcceptThreshold*100, name)
			continue
		}

		if _, err := report.WriteJSON(jsonDir, stem, summary); err != nil {
			batch.AddError("Error writing JSON for %s: %v", name, err)
			continue
		}
		rows = append(rows, report.BuildRow(summary))
	}

	if len(rows) > 0 {
		if err := report.AppendRows("outputs.csv", rows); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}

	log.Info().Int("errors", len(batch.Errors)).Int("processed", len(batch.Accuracies)).Msg("batch finished")
	return batch.Write("report.txt")
}

// processFile runs one document through the pipeline with a dedicated
// per-document log file.
func processFile(config *models.Config, log zerolog.Logger, engine *ocr.Engine, path, stem string) (*models.SaleSummary, float64, error) {
	docLog, closer, err := logging.NewDocumentLogger(config.Log.Dir, stem, zerolog.DebugLevel)
	if err != nil {
		log.Warn().Err(err).Msg("failed to open document log, continuing without")
		docLog = zerolog.Nop()
	} else {
		defer closer.Close()
	}

	pageText, err := engine.PageText(path)
	if err != nil {
		if errors.Is(err, ocr.ErrMultiplePages) {
			docLog.Error().Msg("more than one page found")
		}
		return nil, 0, err
	}

	summary, err := parser.New(docLog).Parse(pageText)
	if err != nil {
		docLog.Error().Err(err).Msg("parse failed")
		return nil, 0, err
	}

	confidence, _ := scorer.New(config.Scoring, docLog).Score(summary)
	return summary, confidence, nil
}

func loadConfig(path string) (*models.Config, error) {
	var config models.Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	config.ApplyDefaults()
	return &config, nil
}
