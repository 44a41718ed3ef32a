// Package reporting genera los reportes de ventas, finanzas, stock y beneficios
// a partir de una foto de los datos. Los constructores son funciones puras.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Placeholders para referencias colgantes.
const (
	DeletedProduct = "Produit supprimé"
	NoCategory     = "Sans catégorie"
	UnknownAuthor  = "Inconnu"
)

// Snapshot foto de las colecciones que lee un reporte.
type Snapshot struct {
	Products   []*entity.Product
	Sales      []*entity.Sale
	Finances   []*entity.FinancialEntry
	Categories []*entity.Category
}

// Meta cabecera del reporte.
type Meta struct {
	Type   string
	Period string
	Author string
	Date   time.Time
}

// Loader lee una Snapshot desde los repositorios.
type Loader struct {
	products   repository.ProductRepository
	sales      repository.SaleRepository
	finances   repository.FinanceRepository
	categories repository.CategoryRepository
}

// NewLoader construye el lector de fotos.
func NewLoader(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	finances repository.FinanceRepository,
	categories repository.CategoryRepository,
) *Loader {
	return &Loader{products: products, sales: sales, finances: finances, categories: categories}
}

// Load lee las cuatro colecciones.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Products, err = l.products.List(ctx); err != nil {
		return snap, fmt.Errorf("listar productos: %w", err)
	}
	if snap.Sales, err = l.sales.List(ctx); err != nil {
		return snap, fmt.Errorf("listar ventas: %w", err)
	}
	if snap.Finances, err = l.finances.List(ctx); err != nil {
		return snap, fmt.Errorf("listar finanzas: %w", err)
	}
	if snap.Categories, err = l.categories.List(ctx); err != nil {
		return snap, fmt.Errorf("listar categorías: %w", err)
	}
	return snap, nil
}

func (s Snapshot) productIndex() map[string]*entity.Product {
	idx := make(map[string]*entity.Product, len(s.Products))
	for _, p := range s.Products {
		idx[p.ID] = p
	}
	return idx
}

func (s Snapshot) categoryName(categoryID string) string {
	for _, c := range s.Categories {
		if c.ID == categoryID {
			return c.Name
		}
	}
	return NoCategory
}

func productName(idx map[string]*entity.Product, productID string) string {
	if p, ok := idx[productID]; ok {
		return p.Name
	}
	return DeletedProduct
}

// Totals agregados compartidos por los reportes y el tablero.
type Totals struct {
	CompletedSales decimal.Decimal
	TotalProfit    decimal.Decimal
	Income         decimal.Decimal
	Expenses       decimal.Decimal
	StockValue     decimal.Decimal
}

// Balance ingresos menos gastos.
func (t Totals) Balance() decimal.Decimal { return t.Income.Sub(t.Expenses) }

// ComputeTotals recorre la foto una vez. TotalProfit suma todas las ventas, anuladas incluidas.
func ComputeTotals(s Snapshot) Totals {
	t := Totals{
		CompletedSales: decimal.Zero,
		TotalProfit:    decimal.Zero,
		Income:         decimal.Zero,
		Expenses:       decimal.Zero,
		StockValue:     decimal.Zero,
	}
	for _, sale := range s.Sales {
		t.TotalProfit = t.TotalProfit.Add(sale.Profit)
		if sale.Status == entity.SaleCompleted {
			t.CompletedSales = t.CompletedSales.Add(sale.TotalAmount)
		}
	}
	for _, f := range s.Finances {
		switch f.Type {
		case entity.EntryIncome:
			t.Income = t.Income.Add(f.Amount)
		case entity.EntryExpense:
			t.Expenses = t.Expenses.Add(f.Amount)
		}
	}
	for _, p := range s.Products {
		t.StockValue = t.StockValue.Add(p.StockValue())
	}
	return t
}

// Margin margen porcentual sobre el precio de compra con un decimal; "0" si no se puede calcular.
func Margin(purchasePrice, unitPrice decimal.Decimal) string {
	if purchasePrice.IsZero() {
		return "0"
	}
	return unitPrice.Sub(purchasePrice).Div(purchasePrice).Mul(decimal.NewFromInt(100)).StringFixed(1)
}
