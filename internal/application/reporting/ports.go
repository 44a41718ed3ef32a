package reporting

// PDFGenerator puerto de salida para renderizar un Document como PDF.
type PDFGenerator interface {
	Render(doc *Document) ([]byte, error)
}
