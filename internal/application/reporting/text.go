package reporting

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/stock"
	"github.com/jhoicas/Gestion-api/pkg/money"
)

var (
	heavyRule = strings.Repeat("=", 50)
	lightRule = strings.Repeat("-", 30)
)

// Title "RAPPORT <NOM DU TYPE>".
func Title(reportType string) string {
	// Un Caser no se comparte entre goroutines.
	return "RAPPORT " + cases.Upper(language.French).String(TypeName(reportType))
}

// Text arma el reporte de texto plano.
func Text(meta Meta, snap Snapshot) (string, error) {
	if err := Validate(meta.Type, meta.Period); err != nil {
		return "", err
	}
	var b strings.Builder
	writeHeader(&b, meta)
	switch meta.Type {
	case entity.ReportSales:
		writeSales(&b, snap)
	case entity.ReportFinancial:
		writeFinancial(&b, snap)
	case entity.ReportStock:
		writeStock(&b, snap)
	case entity.ReportProfit:
		writeProfit(&b, snap)
	}
	return b.String(), nil
}

func author(name string) string {
	if strings.TrimSpace(name) == "" {
		return UnknownAuthor
	}
	return name
}

func writeHeader(b *strings.Builder, meta Meta) {
	fmt.Fprintf(b, "%s\n", Title(meta.Type))
	fmt.Fprintf(b, "Date: %s\n", LongDate(meta.Date))
	fmt.Fprintf(b, "Période: %s\n", PeriodName(meta.Period))
	fmt.Fprintf(b, "Généré par: %s\n", author(meta.Author))
	b.WriteString(heavyRule + "\n\n")
}

func writeSection(b *strings.Builder, title string) {
	b.WriteString(title + "\n" + lightRule + "\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("\n" + heavyRule + "\n")
}

func writeSales(b *strings.Builder, snap Snapshot) {
	idx := snap.productIndex()
	writeSection(b, "VENTES")
	for _, s := range snap.Sales {
		fmt.Fprintf(b, "\n%s\n", productName(idx, s.ProductID))
		fmt.Fprintf(b, "  Quantité: %d\n", s.Quantity)
		fmt.Fprintf(b, "  Prix unitaire: %s\n", money.Format(s.UnitPrice))
		fmt.Fprintf(b, "  Total: %s\n", money.Format(s.TotalAmount))
		fmt.Fprintf(b, "  Bénéfice: %s\n", money.Format(s.Profit))
		fmt.Fprintf(b, "  Statut: %s\n", saleStatus(s))
	}
	writeFooter(b)
	fmt.Fprintf(b, "TOTAL VENTES: %s\n", money.Format(ComputeTotals(snap).CompletedSales))
}

func saleStatus(s *entity.Sale) string {
	if s.IsCancelled() {
		return "Annulée"
	}
	return "Complétée"
}

func writeFinancial(b *strings.Builder, snap Snapshot) {
	writeSection(b, "REVENUS")
	for _, f := range entriesOf(snap, entity.EntryIncome) {
		fmt.Fprintf(b, "%s: %s - %s\n", f.Category, money.Format(f.Amount), f.Description)
	}
	b.WriteString("\n")
	writeSection(b, "DÉPENSES")
	for _, f := range entriesOf(snap, entity.EntryExpense) {
		fmt.Fprintf(b, "%s: %s - %s\n", f.Category, money.Format(f.Amount), f.Description)
	}
	writeFooter(b)
	t := ComputeTotals(snap)
	fmt.Fprintf(b, "Revenus: %s\n", money.Format(t.Income))
	fmt.Fprintf(b, "Dépenses: %s\n", money.Format(t.Expenses))
	fmt.Fprintf(b, "Solde: %s\n", money.Format(t.Balance()))
}

func entriesOf(snap Snapshot, entryType string) []*entity.FinancialEntry {
	var out []*entity.FinancialEntry
	for _, f := range snap.Finances {
		if f.Type == entryType {
			out = append(out, f)
		}
	}
	return out
}

func writeStock(b *strings.Builder, snap Snapshot) {
	writeSection(b, "INVENTAIRE DES PRODUITS")
	for _, p := range snap.Products {
		fmt.Fprintf(b, "\n%s\n", p.Name)
		fmt.Fprintf(b, "  Catégorie: %s\n", snap.categoryName(p.CategoryID))
		fmt.Fprintf(b, "  Prix d'achat: %s\n", money.Format(p.PurchasePrice))
		fmt.Fprintf(b, "  Quantité: %d %s(s)\n", p.Quantity, p.Unit)
		fmt.Fprintf(b, "  Stock min: %d\n", p.MinStock)
		fmt.Fprintf(b, "  Statut: %s\n", stock.ProductStatus(p).ReportLabel())
	}
	writeFooter(b)
	fmt.Fprintf(b, "Total produits: %d\n", len(snap.Products))
	fmt.Fprintf(b, "Valeur du stock: %s\n", money.Format(ComputeTotals(snap).StockValue))
}

func writeProfit(b *strings.Builder, snap Snapshot) {
	idx := snap.productIndex()
	writeSection(b, "ANALYSE DES BÉNÉFICES")
	for _, s := range snap.Sales {
		p := idx[s.ProductID]
		purchase := "0 " + money.Symbol
		margin := "0"
		if p != nil {
			purchase = money.Format(p.PurchasePrice)
			margin = Margin(p.PurchasePrice, s.UnitPrice)
		}
		fmt.Fprintf(b, "\n%s\n", productName(idx, s.ProductID))
		fmt.Fprintf(b, "  Prix d'achat: %s\n", purchase)
		fmt.Fprintf(b, "  Prix de vente: %s\n", money.Format(s.UnitPrice))
		fmt.Fprintf(b, "  Marge: %s%%\n", margin)
		fmt.Fprintf(b, "  Bénéfice: %s\n", money.Format(s.Profit))
	}
	writeFooter(b)
	fmt.Fprintf(b, "BÉNÉFICE TOTAL: %s\n", money.Format(ComputeTotals(snap).TotalProfit))
}
