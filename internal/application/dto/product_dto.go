package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"min_stock"`
	Unit          string          `json:"unit"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no cambian.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	CategoryID    *string          `json:"category_id"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Quantity      *int             `json:"quantity"`
	MinStock      *int             `json:"min_stock"`
	Unit          *string          `json:"unit"`
}

// AdjustStockRequest ajuste manual de existencias (positivo o negativo).
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// ProductFilter filtros del listado.
type ProductFilter struct {
	Query      string `query:"q"`
	CategoryID string `query:"category_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"min_stock"`
	Unit          string          `json:"unit"`
	StockValue    decimal.Decimal `json:"stock_value"`
	Status        string          `json:"status"`       // ok | low | out
	StatusLabel   string          `json:"status_label"` // En stock | Stock faible | Rupture
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CategoryRequest entrada para crear o actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	ProductCount int    `json:"product_count"`
}
