package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// Sale registro del libro de ventas.
// TotalAmount = UnitPrice * Quantity; Profit = (UnitPrice - precio de compra) * Quantity,
// ambos fijados al crear la venta.
type Sale struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Profit       decimal.Decimal `json:"profit"`
	Date         time.Time       `json:"date"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	Status       string          `json:"status"`
	CancelReason string          `json:"cancelReason,omitempty"`
	CancelledAt  *time.Time      `json:"cancelledAt,omitempty"`
	CancelledBy  string          `json:"cancelledBy,omitempty"`
}

// IsCancelled indica si la venta ya fue anulada.
func (s *Sale) IsCancelled() bool { return s.Status == SaleCancelled }
