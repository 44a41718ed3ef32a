package entity

import "time"

// Tipos de reporte.
const (
	ReportSales     = "sales"
	ReportFinancial = "financial"
	ReportStock     = "stock"
	ReportProfit    = "profit"
)

// Períodos de reporte (solo etiqueta).
const (
	PeriodDaily    = "daily"
	PeriodMonthly  = "monthly"
	PeriodSemester = "semester"
)

// Report reporte de texto generado y guardado en el historial.
type Report struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Period      string    `json:"period"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generatedAt"`
	GeneratedBy string    `json:"generatedBy"`
}
