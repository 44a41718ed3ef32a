package reporting

import (
	"strconv"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/stock"
	"github.com/jhoicas/Gestion-api/pkg/money"
)

// Field par etiqueta / valor.
type Field struct {
	Label string
	Value string
}

// Section tabla de una sección del reporte.
type Section struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Document modelo tabular del reporte, independiente del formato de salida.
type Document struct {
	Title    string
	Company  string
	Author   string
	Header   []Field
	Sections []Section
	Totals   []Field
}

// BuildDocument arma el modelo tabular del reporte.
func BuildDocument(meta Meta, snap Snapshot, company string) (*Document, error) {
	if err := Validate(meta.Type, meta.Period); err != nil {
		return nil, err
	}
	doc := &Document{
		Title:   Title(meta.Type),
		Company: company,
		Author:  author(meta.Author),
		Header: []Field{
			{Label: "Date", Value: LongDate(meta.Date)},
			{Label: "Période", Value: PeriodName(meta.Period)},
			{Label: "Généré par", Value: author(meta.Author)},
		},
	}
	t := ComputeTotals(snap)
	switch meta.Type {
	case entity.ReportSales:
		doc.Sections = []Section{salesSection(snap)}
		doc.Totals = []Field{{Label: "TOTAL VENTES", Value: money.FormatPlain(t.CompletedSales)}}
	case entity.ReportFinancial:
		doc.Sections = []Section{
			entriesSection("REVENUS", entriesOf(snap, entity.EntryIncome)),
			entriesSection("DÉPENSES", entriesOf(snap, entity.EntryExpense)),
		}
		doc.Totals = []Field{
			{Label: "Revenus", Value: money.FormatPlain(t.Income)},
			{Label: "Dépenses", Value: money.FormatPlain(t.Expenses)},
			{Label: "Solde", Value: money.FormatPlain(t.Balance())},
		}
	case entity.ReportStock:
		doc.Sections = []Section{stockSection(snap)}
		doc.Totals = []Field{
			{Label: "Total produits", Value: strconv.Itoa(len(snap.Products))},
			{Label: "Valeur du stock", Value: money.FormatPlain(t.StockValue)},
		}
	case entity.ReportProfit:
		doc.Sections = []Section{profitSection(snap)}
		doc.Totals = []Field{{Label: "BÉNÉFICE TOTAL", Value: money.FormatPlain(t.TotalProfit)}}
	}
	return doc, nil
}

func salesSection(snap Snapshot) Section {
	idx := snap.productIndex()
	sec := Section{
		Title:   "VENTES",
		Columns: []string{"Produit", "Quantité", "Prix unitaire", "Total", "Bénéfice", "Statut"},
	}
	for _, s := range snap.Sales {
		sec.Rows = append(sec.Rows, []string{
			productName(idx, s.ProductID),
			strconv.Itoa(s.Quantity),
			money.FormatPlain(s.UnitPrice),
			money.FormatPlain(s.TotalAmount),
			money.FormatPlain(s.Profit),
			saleStatus(s),
		})
	}
	return sec
}

func entriesSection(title string, entries []*entity.FinancialEntry) Section {
	sec := Section{Title: title, Columns: []string{"Catégorie", "Montant", "Description"}}
	for _, f := range entries {
		sec.Rows = append(sec.Rows, []string{f.Category, money.FormatPlain(f.Amount), f.Description})
	}
	return sec
}

func stockSection(snap Snapshot) Section {
	sec := Section{
		Title:   "INVENTAIRE DES PRODUITS",
		Columns: []string{"Produit", "Catégorie", "Prix d'achat", "Quantité", "Stock min", "Statut"},
	}
	for _, p := range snap.Products {
		sec.Rows = append(sec.Rows, []string{
			p.Name,
			snap.categoryName(p.CategoryID),
			money.FormatPlain(p.PurchasePrice),
			strconv.Itoa(p.Quantity) + " " + p.Unit + "(s)",
			strconv.Itoa(p.MinStock),
			stock.ProductStatus(p).ReportLabel(),
		})
	}
	return sec
}

func profitSection(snap Snapshot) Section {
	idx := snap.productIndex()
	sec := Section{
		Title:   "ANALYSE DES BÉNÉFICES",
		Columns: []string{"Produit", "Prix d'achat", "Prix de vente", "Marge", "Bénéfice"},
	}
	for _, s := range snap.Sales {
		purchase, margin := "0 "+money.Symbol, "0"
		if p := idx[s.ProductID]; p != nil {
			purchase = money.FormatPlain(p.PurchasePrice)
			margin = Margin(p.PurchasePrice, s.UnitPrice)
		}
		sec.Rows = append(sec.Rows, []string{
			productName(idx, s.ProductID),
			purchase,
			money.FormatPlain(s.UnitPrice),
			margin + "%",
			money.FormatPlain(s.Profit),
		})
	}
	return sec
}
