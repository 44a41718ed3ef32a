package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. El precio de venta se negocia en cada venta,
// por eso el producto solo guarda el precio de compra.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"categoryId"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"minStock"`
	Unit          string          `json:"unit"` // pièce, kg, litre...
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// StockValue valor del stock a precio de compra.
func (p *Product) StockValue() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
