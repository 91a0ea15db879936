// Package logging builds the zerolog loggers used across the service: one
// process-wide logger, plus per-document file sinks in batch mode.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

// New creates the process logger. Development gets a readable console writer;
// anything else emits JSON.
func New(cfg models.LogConfig) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	return zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
}

// NewDocumentLogger creates a logger writing to <dir>/<stem>.log, truncating
// any previous run's file. The caller owns the returned closer and must close
// it on every exit path.
func NewDocumentLogger(dir, stem string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.Create(filepath.Join(dir, stem+".log"))
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	log := zerolog.New(f).Level(level).With().Timestamp().Str("document", stem).Logger()
	return log, f, nil
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
