package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/reporting"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/pdf"
)

func TestRender_ReporteDeStock(t *testing.T) {
	snap := reporting.Snapshot{
		Products: []*entity.Product{
			{ID: "p1", Name: "Savon", PurchasePrice: decimal.NewFromInt(100), Quantity: 7, MinStock: 5, Unit: "pièce"},
			{ID: "p2", Name: "Riz", PurchasePrice: decimal.NewFromInt(1200), Quantity: 0, MinStock: 2, Unit: "kg"},
		},
	}
	doc, err := reporting.BuildDocument(reporting.Meta{
		Type: entity.ReportStock, Period: entity.PeriodMonthly, Author: "Awa", Date: time.Now(),
	}, snap, "Ma Boutique")
	require.NoError(t, err)

	out, err := pdf.NewMarotoPDFGenerator().Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_SeccionesVacias(t *testing.T) {
	doc, err := reporting.BuildDocument(reporting.Meta{
		Type: entity.ReportFinancial, Period: entity.PeriodDaily, Date: time.Now(),
	}, reporting.Snapshot{}, "")
	require.NoError(t, err)

	out, err := pdf.NewMarotoPDFGenerator().Render(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
