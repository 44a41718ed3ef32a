package entity

// Category representa una categoría de productos.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"` // color de la etiqueta en la interfaz, ej. "#3b82f6"
}
