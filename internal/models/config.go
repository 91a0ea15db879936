package models

// Config represents the service configuration loaded from config.yaml.
type Config struct {
	// Server config
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// Logging
	Log LogConfig `yaml:"log"`

	// OCR fallback config
	OCR OCRConfig `yaml:"ocr"`

	// Scoring config
	Scoring ScoringConfig `yaml:"scoring"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Env   string `yaml:"env"`   // development -> console writer; anything else -> JSON
	Level string `yaml:"level"` // trace, debug, info, warn, error
	Dir   string `yaml:"dir"`   // per-document log files in batch mode
}

// OCRConfig controls the scanned-page fallback pipeline.
type OCRConfig struct {
	Language string `yaml:"language"` // tesseract language (default: "eng")
	DPI      int    `yaml:"dpi"`      // pdftoppm render resolution (default: 200)
}

// ScoringConfig holds the cross-check constants. The defaults reproduce the
// historical behavior; they are configuration because they encode one
// regulatory regime (Indian GST tiers) and one dataset's tolerances.
type ScoringConfig struct {
	// AcceptThreshold is the confidence below which a document is marked for
	// manual review.
	AcceptThreshold float64 `yaml:"accept_threshold"`
	// TotalTolerance is the absolute currency tolerance for the line-item sum
	// vs the printed total.
	TotalTolerance float64 `yaml:"total_tolerance"`
	// ValidTaxRates is the whitelist of GST percentage tiers.
	ValidTaxRates []float64 `yaml:"valid_tax_rates"`
}

// DefaultScoring returns the reference scoring constants.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		AcceptThreshold: 0.90,
		TotalTolerance:  1.0,
		ValidTaxRates:   []float64{0, 5, 12, 18, 28},
	}
}

// ApplyDefaults fills zero-valued fields with the reference defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if c.OCR.Language == "" {
		c.OCR.Language = "eng"
	}
	if c.OCR.DPI == 0 {
		c.OCR.DPI = 200
	}
	def := DefaultScoring()
	if c.Scoring.AcceptThreshold == 0 {
		c.Scoring.AcceptThreshold = def.AcceptThreshold
	}
	if c.Scoring.TotalTolerance == 0 {
		c.Scoring.TotalTolerance = def.TotalTolerance
	}
	if len(c.Scoring.ValidTaxRates) == 0 {
		c.Scoring.ValidTaxRates = def.ValidTaxRates
	}
}
