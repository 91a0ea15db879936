// Package scorer re-derives trusted totals from a parsed SaleSummary and
// cross-checks them against the header fields, producing a [0,1] confidence
// score used as an automated accept/manual-review gate.
package scorer

import (
	"math"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

// Check weights. They sum to maxScore; the total-amount consistency check is
// the dominant signal.
const (
	weightInvoiceNumber = 10.0
	weightDateChecks    = 20.0
	weightTotalAmount   = 50.0
	weightTaxPercentage = 10.0
	weightQuantity      = 10.0

	maxScore = 100.0
)

// dateLayout matches the printed "day abbreviated-month year" form,
// e.g. "01 Jan 2024".
const dateLayout = "2 Jan 2006"

var (
	reInvoiceNumber = regexp.MustCompile(`^INV-\d*$`)
	reQuantity      = regexp.MustCompile(`^\d+\s*[A-Z]*$`)
)

// Scorer runs the five consistency checks. A single instance is safe to reuse
// across documents.
type Scorer struct {
	cfg models.ScoringConfig
	log zerolog.Logger
}

// New returns a Scorer with the given constants. Use models.DefaultScoring()
// for the reference tolerances and GST tiers.
func New(cfg models.ScoringConfig, log zerolog.Logger) *Scorer {
	return &Scorer{cfg: cfg, log: log}
}

// Score computes the confidence for summary: the sum of the five check
// credits divided by the fixed maximum of 100, rounded to 4 decimals.
//
// The two proportional per-item checks are omitted entirely for a zero-item
// document, so its maximum achievable confidence is 0.80.
func (s *Scorer) Score(summary *models.SaleSummary) (float64, models.ScoreBreakdown) {
	breakdown := models.ScoreBreakdown{
		InvoiceNumber: s.checkInvoiceNumber(summary),
		DateChecks:    s.checkDates(summary),
		TotalAmount:   s.checkTotalAmount(summary),
	}
	if len(summary.Items) > 0 {
		breakdown.TaxPercentage = s.checkTaxPercentages(summary)
		breakdown.Quantity = s.checkQuantities(summary)
	}

	confidence := round4(breakdown.Total() / maxScore)
	s.log.Info().
		Float64("confidence", confidence).
		Float64("invoice_number", breakdown.InvoiceNumber).
		Float64("date_checks", breakdown.DateChecks).
		Float64("total_amount", breakdown.TotalAmount).
		Float64("tax_percentage", breakdown.TaxPercentage).
		Float64("quantity", breakdown.Quantity).
		Msg("confidence score computed")
	return confidence, breakdown
}

// NeedsReview reports whether confidence falls below the acceptance threshold.
func (s *Scorer) NeedsReview(confidence float64) bool {
	return confidence < s.cfg.AcceptThreshold
}

// checkInvoiceNumber is all-or-nothing on the INV-<digits> format.
func (s *Scorer) checkInvoiceNumber(summary *models.SaleSummary) float64 {
	if summary.InvoiceNumber == nil || !reInvoiceNumber.MatchString(*summary.InvoiceNumber) {
		s.log.Debug().Msg("invoice number failed pattern check")
		return 0
	}
	return weightInvoiceNumber
}

// checkDates awards 45% of the weight per parseable date and the remaining
// 10% when both parsed and the due date is not before the invoice date. An
// unparseable or missing date forfeits only its own portion.
func (s *Scorer) checkDates(summary *models.SaleSummary) float64 {
	credit := 0.0

	invDate, invOK := parseDate(summary.InvoiceDate)
	if invOK {
		credit += weightDateChecks * 0.45
	} else {
		s.log.Debug().Msg("failed to parse invoice date")
	}

	dueDate, dueOK := parseDate(summary.DueDate)
	if dueOK {
		credit += weightDateChecks * 0.45
	} else {
		s.log.Debug().Msg("failed to parse due date")
	}

	if invOK && dueOK && !dueDate.Before(invDate) {
		credit += weightDateChecks * 0.1
	} else {
		s.log.Debug().Msg("date ordering check failed")
	}
	return credit
}

// checkTotalAmount compares the sum of parsed line-item amounts against the
// printed total. Within the configured currency tolerance the full weight is
// awarded. On a mismatch the credit scales with the fraction of items whose
// amount did parse: the more amounts failed to parse, the more the shortfall
// is attributed to extraction gaps rather than genuine inconsistency.
func (s *Scorer) checkTotalAmount(summary *models.SaleSummary) float64 {
	if summary.TotalAmount == nil {
		s.log.Debug().Msg("total amount missing, consistency check forfeited")
		return 0
	}

	calculated := 0.0
	nullAmounts := 0
	for _, item := range summary.Items {
		if item.Amount == nil {
			nullAmounts++
			continue
		}
		calculated += *item.Amount
	}
	s.log.Debug().
		Float64("calculated_total", calculated).
		Float64("expected_total", *summary.TotalAmount).
		Msg("re-derived total from line items")

	if math.Abs(calculated-*summary.TotalAmount) < s.cfg.TotalTolerance {
		return weightTotalAmount
	}
	if len(summary.Items) == 0 {
		return 0
	}
	adjustment := 1 - float64(nullAmounts)/float64(len(summary.Items))
	s.log.Debug().Float64("adjustment", adjustment).Msg("total amount mismatch, scaled credit")
	return adjustment * weightTotalAmount
}

// checkTaxPercentages awards credit proportional to the count of items whose
// tax percentage is one of the whitelisted GST tiers.
func (s *Scorer) checkTaxPercentages(summary *models.SaleSummary) float64 {
	valid := 0
	for _, item := range summary.Items {
		if item.TaxPercentage != nil && s.validTaxRate(*item.TaxPercentage) {
			valid++
		}
	}
	s.log.Debug().Int("valid_tax_rates", valid).Msg("tax percentage check")
	return float64(valid) / float64(len(summary.Items)) * weightTaxPercentage
}

// checkQuantities awards credit proportional to the count of items whose
// quantity looks like "<digits> <unit letters>".
func (s *Scorer) checkQuantities(summary *models.SaleSummary) float64 {
	valid := 0
	for _, item := range summary.Items {
		if item.Quantity != nil && reQuantity.MatchString(*item.Quantity) {
			valid++
		}
	}
	s.log.Debug().Int("valid_quantities", valid).Msg("quantity format check")
	return float64(valid) / float64(len(summary.Items)) * weightQuantity
}

func (s *Scorer) validTaxRate(rate float64) bool {
	for _, tier := range s.cfg.ValidTaxRates {
		if rate == tier {
			return true
		}
	}
	return false
}

func parseDate(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
