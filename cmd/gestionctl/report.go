package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/reporting"
	infrapdf "github.com/jhoicas/Gestion-api/internal/infrastructure/pdf"
)

type reportCmd struct {
	reportType string
	period     string
	format     string
	author     string
	outDir     string
}

func newReportCmd() *cobra.Command {
	rc := &reportCmd{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Exporta un reporte (txt o pdf) sin guardarlo en el historial",
		RunE:  rc.run,
	}
	cmd.Flags().StringVar(&rc.reportType, "type", "", "sales | financial | stock | profit")
	cmd.Flags().StringVar(&rc.period, "period", "monthly", "daily | monthly | semester")
	cmd.Flags().StringVar(&rc.format, "format", reporting.FormatText, "txt | pdf")
	cmd.Flags().StringVar(&rc.author, "author", "gestionctl", "Nombre que figura como autor")
	cmd.Flags().StringVarP(&rc.outDir, "out", "o", "", "Directorio de salida (vacío = stdout)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	st := e.stores
	uc := reporting.NewUseCase(
		reporting.NewLoader(st.Products, st.Sales, st.Finances, st.Categories),
		st.Reports, st.Settings, infrapdf.NewMarotoPDFGenerator(),
	)
	f, err := uc.Export(ctx, dto.GenerateReportRequest{Type: rc.reportType, Period: rc.period}, rc.format, rc.author)
	if err != nil {
		return fmt.Errorf("exportar reporte: %w", err)
	}

	if rc.outDir == "" {
		_, err := cmd.OutOrStdout().Write(f.Body)
		return err
	}
	path := filepath.Join(rc.outDir, f.Filename)
	if err := os.WriteFile(path, f.Body, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	e.log.Info().Str("file", path).Int("bytes", len(f.Body)).Msg("reporte exportado")
	return nil
}
