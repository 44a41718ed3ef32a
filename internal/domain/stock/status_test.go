package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gestion-api/internal/domain/stock"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minStock int
		want     stock.Status
	}{
		{"agotado aunque minStock > 0", 0, 5, stock.StatusOut},
		{"agotado con minStock 0", 0, 0, stock.StatusOut},
		{"en el umbral", 5, 5, stock.StatusLow},
		{"bajo el umbral", 1, 5, stock.StatusLow},
		{"sobre el umbral", 10, 5, stock.StatusOK},
		{"negativo se trata como agotado", -2, 5, stock.StatusOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stock.Of(tt.quantity, tt.minStock))
		})
	}
}

func TestStatus_Etiquetas(t *testing.T) {
	assert.Equal(t, "RUPTURE", stock.StatusOut.ReportLabel())
	assert.Equal(t, "FAIBLE", stock.StatusLow.ReportLabel())
	assert.Equal(t, "OK", stock.StatusOK.ReportLabel())
	assert.Equal(t, "Stock faible", stock.StatusLow.Label())
}
