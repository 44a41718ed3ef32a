package reporting

import (
	"fmt"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

var typeNames = map[string]string{
	entity.ReportSales:     "Rapport des ventes",
	entity.ReportFinancial: "Situation financière",
	entity.ReportStock:     "État du stock",
	entity.ReportProfit:    "Analyse des profits",
}

var periodNames = map[string]string{
	entity.PeriodDaily:    "Quotidien",
	entity.PeriodMonthly:  "Mensuel",
	entity.PeriodSemester: "Semestriel",
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var frenchShortMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// TypeName nombre visible del tipo de reporte.
func TypeName(reportType string) string { return typeNames[reportType] }

// PeriodName nombre visible del período.
func PeriodName(period string) string { return periodNames[period] }

// ReportName "<tipo> - <período>".
func ReportName(reportType, period string) string {
	return TypeName(reportType) + " - " + PeriodName(period)
}

// Validate comprueba tipo y período.
func Validate(reportType, period string) error {
	if _, ok := typeNames[reportType]; !ok {
		return domain.Invalid("type", "tipo de reporte desconocido")
	}
	if _, ok := periodNames[period]; !ok {
		return domain.Invalid("period", "período desconocido")
	}
	return nil
}

// LongDate fecha "dd MMMM yyyy" con el mes en francés.
func LongDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// ShortMonth abreviatura francesa del mes ("janv.").
func ShortMonth(m time.Month) string { return frenchShortMonths[m-1] }

// Filename rapport_<tipo>_<yyyy-MM-dd>.<ext>.
func Filename(reportType string, date time.Time, ext string) string {
	return fmt.Sprintf("rapport_%s_%s.%s", reportType, date.Format(time.DateOnly), ext)
}
