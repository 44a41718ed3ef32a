package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento financiero.
const (
	EntryIncome  = "income"
	EntryExpense = "expense"
)

// Catálogos de categorías (etiquetas visibles, en francés).
var (
	IncomeCategories  = []string{"Ventes", "Services", "Investissements", "Autres revenus"}
	ExpenseCategories = []string{"Achats stock", "Salaires", "Loyer", "Électricité", "Marketing", "Fournitures", "Autres dépenses"}
)

// FinancialEntry ingreso o gasto del libro financiero.
type FinancialEntry struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"` // income | expense
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}
