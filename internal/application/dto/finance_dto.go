package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialEntryRequest entrada para crear o actualizar un movimiento.
// Date vacío = ahora.
type FinancialEntryRequest struct {
	Type        string          `json:"type"` // income | expense
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
}

// FinancialEntryResponse salida de un movimiento.
type FinancialEntryResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// FinanceListResponse movimientos con sus totales.
type FinanceListResponse struct {
	Items         []FinancialEntryResponse `json:"items"`
	TotalIncome   decimal.Decimal          `json:"total_income"`
	TotalExpenses decimal.Decimal          `json:"total_expenses"`
	Balance       decimal.Decimal          `json:"balance"`
}

// FinanceCategoriesResponse catálogos fijos de categorías.
type FinanceCategoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}
