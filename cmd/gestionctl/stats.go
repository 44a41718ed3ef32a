package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/Gestion-api/internal/application/analytics"
	"github.com/jhoicas/Gestion-api/pkg/money"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Muestra los indicadores del tablero",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	st := e.stores
	stats, err := appanalytics.NewDashboardUseCase(st.Products, st.Sales, st.Finances).GetStats(ctx)
	if err != nil {
		return fmt.Errorf("calcular indicadores: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Produits            %d\n", stats.TotalProducts)
	fmt.Fprintf(w, "Valeur du stock     %s\n", money.FormatPlain(stats.TotalStockValue))
	fmt.Fprintf(w, "Stock faible        %d\n", stats.LowStockProducts)
	fmt.Fprintf(w, "Rupture             %d\n", stats.OutOfStockProducts)
	fmt.Fprintf(w, "Revenus             %s\n", money.FormatPlain(stats.TotalRevenue))
	fmt.Fprintf(w, "Dépenses            %s\n", money.FormatPlain(stats.TotalExpenses))
	fmt.Fprintf(w, "Bénéfice net        %s\n", money.FormatPlain(stats.NetProfit))
	fmt.Fprintf(w, "Ventes              %s\n", money.FormatPlain(stats.TodaySales))

	if e.db.Postgres != nil {
		sum, err := e.db.Postgres.SumCompletedSales(ctx)
		if err != nil {
			return err
		}
		if !sum.Equal(stats.TodaySales) {
			e.log.Warn().
				Str("sql", sum.String()).
				Str("memoria", stats.TodaySales.String()).
				Msg("la suma SQL de ventas no coincide con el agregado en memoria")
		}
	}
	return nil
}
