// Package stock contiene reglas puras sobre el nivel de existencias (servicio de dominio).
package stock

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// Status nivel de stock de un producto.
type Status string

const (
	StatusOut Status = "out" // quantity <= 0 (un stock negativo también es ruptura)
	StatusLow Status = "low" // 0 < quantity <= minStock
	StatusOK  Status = "ok"
)

// Of clasifica un nivel de stock. Un producto agotado nunca cuenta como stock bajo.
func Of(quantity, minStock int) Status {
	switch {
	case quantity <= 0:
		return StatusOut
	case quantity <= minStock:
		return StatusLow
	default:
		return StatusOK
	}
}

// ProductStatus atajo sobre un producto.
func ProductStatus(p *entity.Product) Status {
	return Of(p.Quantity, p.MinStock)
}

// Label etiqueta corta usada en la lista de productos.
func (s Status) Label() string {
	switch s {
	case StatusOut:
		return "Rupture"
	case StatusLow:
		return "Stock faible"
	default:
		return "En stock"
	}
}

// ReportLabel etiqueta en mayúsculas del reporte de stock.
func (s Status) ReportLabel() string {
	switch s {
	case StatusOut:
		return "RUPTURE"
	case StatusLow:
		return "FAIBLE"
	default:
		return "OK"
	}
}
