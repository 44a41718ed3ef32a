// Package analytics contiene el tablero de indicadores y la búsqueda global.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/reporting"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/internal/domain/stock"
)

const (
	dashboardRecentSales = 5 // ventas en el widget "ventas recientes"
	dashboardMonths      = 6 // meses en la serie de ventas
)

// DashboardUseCase calcula los indicadores del tablero. No guarda caché: cada
// llamada recalcula a partir de las colecciones actuales.
type DashboardUseCase struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	finances repository.FinanceRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	finances repository.FinanceRepository,
) *DashboardUseCase {
	return &DashboardUseCase{products: products, sales: sales, finances: finances, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// snapshot lee las tres colecciones en paralelo.
func (uc *DashboardUseCase) snapshot(ctx context.Context) (reporting.Snapshot, error) {
	type productsResult struct {
		items []*entity.Product
		err   error
	}
	type salesResult struct {
		items []*entity.Sale
		err   error
	}
	type financesResult struct {
		items []*entity.FinancialEntry
		err   error
	}

	productsCh := make(chan productsResult, 1)
	salesCh := make(chan salesResult, 1)
	financesCh := make(chan financesResult, 1)

	go func() {
		items, err := uc.products.List(ctx)
		productsCh <- productsResult{items, err}
	}()
	go func() {
		items, err := uc.sales.List(ctx)
		salesCh <- salesResult{items, err}
	}()
	go func() {
		items, err := uc.finances.List(ctx)
		financesCh <- financesResult{items, err}
	}()

	products := <-productsCh
	saleList := <-salesCh
	finances := <-financesCh

	if products.err != nil {
		return reporting.Snapshot{}, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if saleList.err != nil {
		return reporting.Snapshot{}, fmt.Errorf("dashboard: ventas: %w", saleList.err)
	}
	if finances.err != nil {
		return reporting.Snapshot{}, fmt.Errorf("dashboard: finanzas: %w", finances.err)
	}
	return reporting.Snapshot{Products: products.items, Sales: saleList.items, Finances: finances.items}, nil
}

// GetStats devuelve los indicadores globales.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	snap, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(snap)
	return &stats, nil
}

// GetAlerts devuelve primero los productos agotados y después los de stock bajo.
func (uc *DashboardUseCase) GetAlerts(ctx context.Context) ([]dto.StockAlertDTO, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return StockAlerts(list), nil
}

// GetSummary indicadores, alertas, ventas recientes, serie mensual y gastos por categoría.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	snap, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryDTO{
		Stats:              ComputeStats(snap),
		Alerts:             StockAlerts(snap.Products),
		RecentSales:        recentSales(snap),
		MonthlySales:       MonthlySeries(snap.Sales, uc.now(), dashboardMonths),
		ExpensesByCategory: ExpensesByCategory(snap.Finances),
	}, nil
}

// ComputeStats función pura sobre la foto.
func ComputeStats(snap reporting.Snapshot) dto.DashboardStatsDTO {
	t := reporting.ComputeTotals(snap)
	stats := dto.DashboardStatsDTO{
		TotalProducts:   len(snap.Products),
		TotalStockValue: t.StockValue,
		TotalRevenue:    t.Income,
		TotalExpenses:   t.Expenses,
		NetProfit:       t.Balance(),
		TodaySales:      t.CompletedSales,
	}
	for _, p := range snap.Products {
		switch stock.ProductStatus(p) {
		case stock.StatusOut:
			stats.OutOfStockProducts++
		case stock.StatusLow:
			stats.LowStockProducts++
		}
	}
	return stats
}

// StockAlerts agotados primero, luego stock bajo, respetando el orden de la colección.
func StockAlerts(products []*entity.Product) []dto.StockAlertDTO {
	out := make([]dto.StockAlertDTO, 0)
	var low []dto.StockAlertDTO
	for _, p := range products {
		status := stock.ProductStatus(p)
		alert := dto.StockAlertDTO{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			MinStock:  p.MinStock,
			Unit:      p.Unit,
			Status:    string(status),
		}
		switch status {
		case stock.StatusOut:
			alert.Message = "Rupture de stock"
			out = append(out, alert)
		case stock.StatusLow:
			alert.Message = fmt.Sprintf("Stock faible: %d %s(s)", p.Quantity, p.Unit)
			low = append(low, alert)
		}
	}
	return append(out, low...)
}

func recentSales(snap reporting.Snapshot) []dto.SaleResponse {
	names := make(map[string]string, len(snap.Products))
	for _, p := range snap.Products {
		names[p.ID] = p.Name
	}
	n := min(dashboardRecentSales, len(snap.Sales))
	out := make([]dto.SaleResponse, 0, n)
	for _, s := range snap.Sales[:n] {
		name, ok := names[s.ProductID]
		if !ok {
			name = sales.DeletedProduct
		}
		out = append(out, sales.ToSaleResponse(s, name))
	}
	return out
}

// MonthlySeries ventas y beneficio de las ventas completadas en los últimos n meses
// (el mes en curso incluido), del más antiguo al más reciente.
func MonthlySeries(list []*entity.Sale, now time.Time, months int) []dto.MonthlySalesDTO {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	out := make([]dto.MonthlySalesDTO, months)
	for i := range out {
		m := first.AddDate(0, i, 0)
		out[i] = dto.MonthlySalesDTO{Month: reporting.ShortMonth(m.Month()), Sales: decimal.Zero, Profit: decimal.Zero}
	}
	for _, s := range list {
		if s.Status != entity.SaleCompleted {
			continue
		}
		date := s.Date.In(now.Location())
		i := (date.Year()-first.Year())*12 + int(date.Month()) - int(first.Month())
		if i < 0 || i >= months {
			continue
		}
		out[i].Sales = out[i].Sales.Add(s.TotalAmount)
		out[i].Profit = out[i].Profit.Add(s.Profit)
	}
	return out
}

// ExpensesByCategory total de gastos por categoría con su porcentaje (un decimal),
// del mayor al menor.
func ExpensesByCategory(entries []*entity.FinancialEntry) []dto.ExpenseShareDTO {
	totals := make(map[string]decimal.Decimal)
	sum := decimal.Zero
	for _, e := range entries {
		if e.Type != entity.EntryExpense {
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
		sum = sum.Add(e.Amount)
	}
	out := make([]dto.ExpenseShareDTO, 0, len(totals))
	for category, amount := range totals {
		pct := decimal.Zero
		if !sum.IsZero() {
			pct = amount.Div(sum).Mul(decimal.NewFromInt(100)).Round(1)
		}
		out = append(out, dto.ExpenseShareDTO{Category: category, Amount: amount, Percentage: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
