// Package pdf genera los reportes PDF de inventario y movimientos con
// Maroto v2: encabezado con título y fecha, tabla con cebra y pie con el
// total de filas.
package pdf

import (
	"fmt"
	"strconv"
	"time"

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

	"github.com/chcomputer/almacen-api/internal/application/export"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ export.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa export.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Products genera el reporte PDF del inventario completo.
func (g *MarotoReportGenerator) Products(rows []repository.ProductReportRow) ([]byte, error) {
	m := newDocument("Reporte de Inventario")

	m.AddRows(tableHeader([]headerCol{
		{"Código", 2}, {"Nombre", 3}, {"Cant.", 1}, {"Mín.", 1},
		{"Ubicación", 2}, {"Proveedor", 2}, {"Creado", 1},
	}))
	for i, r := range rows {
		m.AddRows(tableRow(i, []bodyCol{
			{r.Code, 2, align.Left}, {r.Name, 3, align.Left},
			{strconv.Itoa(r.Quantity), 1, align.Right}, {strconv.Itoa(r.MinStock), 1, align.Right},
			{r.Location, 2, align.Left}, {r.SupplierName, 2, align.Left},
			{r.CreatedAt, 1, align.Left},
		}))
	}
	m.AddRows(footerRow(len(rows), "productos"))

	return generate(m)
}

// Movements genera el reporte PDF de movimientos (una fila por línea).
func (g *MarotoReportGenerator) Movements(rows []repository.MovementReportRow) ([]byte, error) {
	m := newDocument("Reporte de Movimientos")

	m.AddRows(tableHeader([]headerCol{
		{"Código", 2}, {"Tipo", 1}, {"Fecha", 2}, {"Producto", 3},
		{"Cant.", 1}, {"Usuario", 2}, {"Motivo", 1},
	}))
	for i, r := range rows {
		m.AddRows(tableRow(i, []bodyCol{
			{r.BatchCode, 2, align.Left}, {r.Type, 1, align.Left},
			{r.Date.Format("02/01/2006 15:04"), 2, align.Left},
			{r.ProductName, 3, align.Left},
			{strconv.Itoa(r.Quantity), 1, align.Right},
			{r.UserName, 2, align.Left}, {r.Reason, 1, align.Left},
		}))
	}
	m.AddRows(footerRow(len(rows), "movimientos"))

	return generate(m)
}

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor("CH Computer", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("CH Computer · Almacén", props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	return m
}

type headerCol struct {
	label string
	width int
}

type bodyCol struct {
	value string
	width int
	align align.Type
}

func tableHeader(cols []headerCol) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.width).Add(
			text.New(c.label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		))
	}
	return r
}

func tableRow(index int, cols []bodyCol) core.Row {
	r := row.New(6)
	if index%2 == 1 {
		r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
	}
	for _, c := range cols {
		r.Add(col.New(c.width).Add(
			text.New(c.value, props.Text{Size: 7, Align: c.align, Top: 1}),
		))
	}
	return r
}

func footerRow(count int, noun string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total: %d %s", count, noun), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 3, Color: colorGray,
			}),
		),
	)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}
