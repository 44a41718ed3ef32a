// Package pdf renderiza los reportes en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  BANDA: Título del reporte          │  Nombre de la tienda  │
//	│  Date / Période / Généré par                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIÓN: título + tabla (cabecera coloreada, filas)        │
//	│  ...                                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: etiqueta │ valor                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Gestion-api/internal/application/reporting"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 241, Green: 245, Blue: 249}
)

const gridSize = 12

var _ reporting.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reporting.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Render genera el PDF del documento y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(doc *reporting.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(bandRow(doc))
	m.AddRows(headerFieldsRow(doc.Header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, sec := range doc.Sections {
		m.AddRows(row.New(4))
		m.AddRows(sectionTitleRow(sec.Title))
		m.AddRows(tableHeaderRow(sec.Columns))
		m.AddRows(tableRows(sec)...)
	}

	m.AddRows(row.New(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(doc.Totals)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// bandRow: banda de color con el título (izq) y la tienda (der).
func bandRow(doc *reporting.Document) core.Row {
	return row.New(16).Add(
		col.New(8).Add(text.New(doc.Title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorWhite, Top: 4, Left: 3,
		})),
		col.New(4).Add(text.New(nonEmpty(doc.Company, "Gestion"), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorWhite, Top: 5, Right: 3,
		})),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// headerFieldsRow: Date / Période / Généré par en una línea.
func headerFieldsRow(fields []reporting.Field) core.Row {
	r := row.New(10)
	size := gridSize / max(len(fields), 1)
	for _, f := range fields {
		r.Add(col.New(size).Add(text.New(f.Label+": "+f.Value, props.Text{
			Size: 8, Top: 3, Color: colorGray,
		})))
	}
	return r
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(gridSize).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
	})))
}

// tableHeaderRow: cabecera de la tabla con fondo de color.
func tableHeaderRow(columns []string) core.Row {
	sizes := columnSizes(len(columns))
	cols := make([]core.Col, 0, len(columns))
	for i, label := range columns {
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: cellAlign(i),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, con franjas alternas.
func tableRows(sec reporting.Section) []core.Row {
	sizes := columnSizes(len(sec.Columns))
	out := make([]core.Row, 0, len(sec.Rows)+1)
	if len(sec.Rows) == 0 {
		return append(out, row.New(7).Add(col.New(gridSize).Add(text.New("Aucune donnée", props.Text{
			Size: 8, Align: align.Center, Top: 1.5, Color: colorGray,
		}))))
	}
	for n, values := range sec.Rows {
		cols := make([]core.Col, 0, len(values))
		for i, v := range values {
			if i >= len(sizes) {
				break
			}
			cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
				Size: 8, Align: cellAlign(i), Top: 1.5, Left: 1, Right: 1,
			})))
		}
		r := row.New(7).Add(cols...)
		if n%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

// totalsRows: bloque de totales alineado a la derecha.
func totalsRows(totals []reporting.Field) []core.Row {
	out := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		out = append(out, row.New(7).Add(
			col.New(5),
			col.New(4).Add(text.New(t.Label+":", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1, Right: 2,
			})),
			col.New(3).Add(text.New(t.Value, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnSizes reparte la grilla de 12 dando el sobrante a la primera columna.
func columnSizes(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridSize {
		n = gridSize
	}
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = gridSize / n
	}
	sizes[0] += gridSize % n
	return sizes
}

// cellAlign la primera columna (nombre) a la izquierda, el resto a la derecha.
func cellAlign(i int) align.Type {
	if i == 0 {
		return align.Left
	}
	return align.Right
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
