package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CancelSaleRequest motivo obligatorio de la anulación.
type CancelSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Profit       decimal.Decimal `json:"profit"`
	Date         time.Time       `json:"date"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Status       string          `json:"status"`
	CancelReason string          `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	CancelledBy  string          `json:"cancelled_by,omitempty"`
}
