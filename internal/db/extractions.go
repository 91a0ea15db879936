package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Extraction is one processed document as persisted: identifying header
// fields, the acceptance outcome and the full summary JSON.
type Extraction struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   string    `json:"invoice_date"`
	TotalAmount   float64   `json:"total_amount"`
	Confidence    float64   `json:"confidence"`
	Status        string    `json:"status"` // accepted | needs_review
	SourceURL     string    `json:"source_url"`
	SummaryJSON   string    `json:"summary_json"`
	CreatedAt     time.Time `json:"created_at"`
}

// Extraction status values.
const (
	StatusAccepted    = "accepted"
	StatusNeedsReview = "needs_review"
)

func SaveExtraction(ctx context.Context, ext *Extraction) error {
	query := `
		INSERT INTO extractions (
			invoice_number, invoice_date, total_amount,
			confidence, status, source_url, summary_json
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return Pool.QueryRow(ctx, query,
		ext.InvoiceNumber, ext.InvoiceDate, ext.TotalAmount,
		ext.Confidence, ext.Status, ext.SourceURL, ext.SummaryJSON,
	).Scan(&ext.ID, &ext.CreatedAt)
}

func GetExtractions(ctx context.Context, limit int) ([]Extraction, error) {
	query := `
		SELECT id, COALESCE(invoice_number, ''), COALESCE(invoice_date, ''),
		       COALESCE(total_amount, 0), confidence, status,
		       COALESCE(source_url, ''), created_at
		FROM extractions
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []Extraction
	for rows.Next() {
		var ext Extraction
		err := rows.Scan(
			&ext.ID, &ext.InvoiceNumber, &ext.InvoiceDate,
			&ext.TotalAmount, &ext.Confidence, &ext.Status,
			&ext.SourceURL, &ext.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		extractions = append(extractions, ext)
	}
	return extractions, rows.Err()
}

func GetExtraction(ctx context.Context, id uuid.UUID) (*Extraction, error) {
	query := `
		SELECT id, COALESCE(invoice_number, ''), COALESCE(invoice_date, ''),
		       COALESCE(total_amount, 0), confidence, status,
		       COALESCE(source_url, ''), COALESCE(summary_json, ''), created_at
		FROM extractions
		WHERE id = $1
	`
	var ext Extraction
	err := Pool.QueryRow(ctx, query, id).Scan(
		&ext.ID, &ext.InvoiceNumber, &ext.InvoiceDate,
		&ext.TotalAmount, &ext.Confidence, &ext.Status,
		&ext.SourceURL, &ext.SummaryJSON, &ext.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ext, nil
}
