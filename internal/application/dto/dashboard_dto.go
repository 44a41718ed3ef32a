package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts      int             `json:"total_products"`
	TotalStockValue    decimal.Decimal `json:"total_stock_value"`
	LowStockProducts   int             `json:"low_stock_products"`
	OutOfStockProducts int             `json:"out_of_stock_products"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetProfit          decimal.Decimal `json:"net_profit"`
	// TodaySales suma de todas las ventas completadas, sin filtrar por fecha.
	TodaySales decimal.Decimal `json:"today_sales"`
}

// StockAlertDTO producto agotado o con stock bajo.
type StockAlertDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	MinStock  int    `json:"min_stock"`
	Unit      string `json:"unit"`
	Status    string `json:"status"`  // out | low
	Message   string `json:"message"` // "Rupture de stock" | "Stock faible: 3 kg(s)"
}

// MonthlySalesDTO ventas y beneficio de un mes.
type MonthlySalesDTO struct {
	Month  string          `json:"month"` // "janv.", "févr."...
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
}

// ExpenseShareDTO gasto total de una categoría con su porcentaje.
type ExpenseShareDTO struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Stats              DashboardStatsDTO `json:"stats"`
	Alerts             []StockAlertDTO   `json:"alerts"`
	RecentSales        []SaleResponse    `json:"recent_sales"`
	MonthlySales       []MonthlySalesDTO `json:"monthly_sales"`
	ExpensesByCategory []ExpenseShareDTO `json:"expenses_by_category"`
}
