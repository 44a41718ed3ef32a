package dto

import "time"

// GenerateReportRequest tipo y período del reporte.
type GenerateReportRequest struct {
	Type   string `json:"type" query:"type"`     // sales | financial | stock | profit
	Period string `json:"period" query:"period"` // daily | monthly | semester
}

// ReportResponse reporte guardado en el historial.
type ReportResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Period      string    `json:"period"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
	GeneratedBy string    `json:"generated_by"`
}

// ReportFile archivo exportado listo para descargar.
type ReportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
