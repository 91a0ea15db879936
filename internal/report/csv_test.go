package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstparse/invoice-extract-service/internal/models"
)

func intraStateSummary() *models.SaleSummary {
	return &models.SaleSummary{
		InvoiceRecord: models.InvoiceRecord{
			InvoiceNumber: models.String("INV-1042"),
			InvoiceDate:   models.String("01 Jan 2024"),
			TotalAmount:   models.Float64(1180.00),
		},
		Items: []models.LineItem{
			{
				TaxableValue: models.Float64(900),
				TaxAmount:    models.Float64(162),
				SGSTAmount:   models.Float64(81),
				CGSTAmount:   models.Float64(81),
			},
			{
				TaxableValue: models.Float64(100),
				TaxAmount:    models.Float64(18),
				SGSTAmount:   models.Float64(9),
				CGSTAmount:   models.Float64(9),
			},
		},
	}
}

func TestBuildRow(t *testing.T) {
	row := BuildRow(intraStateSummary())

	assert.Equal(t, "1000.00", row.TaxableValue.StringFixed(2))
	assert.Equal(t, "90.00", row.SGSTAmount.StringFixed(2))
	assert.Equal(t, "90.00", row.CGSTAmount.StringFixed(2))
	assert.Equal(t, "0.00", row.IGSTAmount.StringFixed(2))
	assert.Equal(t, "180.00", row.TaxAmount.StringFixed(2))

	require.NotNil(t, row.SGSTRate)
	assert.Equal(t, "9.00", row.SGSTRate.StringFixed(2))
	require.NotNil(t, row.CGSTRate)
	assert.Equal(t, "9.00", row.CGSTRate.StringFixed(2))

	// overall rate is against the final amount, not the taxable value
	require.NotNil(t, row.TaxRate)
	assert.Equal(t, "15.25", row.TaxRate.StringFixed(2))

	require.NotNil(t, row.FinalAmount)
	assert.Equal(t, 1180.00, *row.FinalAmount)
}

func TestBuildRow_SkipsNilFields(t *testing.T) {
	summary := intraStateSummary()
	summary.Items[1].TaxableValue = nil
	summary.Items[1].SGSTAmount = nil

	row := BuildRow(summary)
	assert.Equal(t, "900.00", row.TaxableValue.StringFixed(2))
	assert.Equal(t, "81.00", row.SGSTAmount.StringFixed(2))
	assert.Equal(t, "90.00", row.CGSTAmount.StringFixed(2))
}

func TestBuildRow_ZeroDenominatorLeavesRatesNil(t *testing.T) {
	row := BuildRow(&models.SaleSummary{
		Items: []models.LineItem{{TaxAmount: models.Float64(18)}},
	})

	assert.Nil(t, row.SGSTRate)
	assert.Nil(t, row.CGSTRate)
	assert.Nil(t, row.IGSTRate)
	// missing printed total also forfeits the overall rate
	assert.Nil(t, row.TaxRate)
}

func TestAppendRows_HeaderOnlyOnCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputs.csv")

	require.NoError(t, AppendRows(path, []Row{BuildRow(intraStateSummary())}))
	require.NoError(t, AppendRows(path, []Row{BuildRow(intraStateSummary())}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	for _, rec := range records[1:] {
		require.Len(t, rec, len(csvHeader))
		assert.Equal(t, "1000.00", rec[0])
		assert.Equal(t, "INV-1042", rec[10])
	}
}
