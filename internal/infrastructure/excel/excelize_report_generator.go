// Package excel genera los reportes XLSX de inventario y movimientos con
// excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/chcomputer/almacen-api/internal/application/export"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

const sheetName = "Sheet1"

var _ export.ExcelGenerator = (*ExcelizeReportGenerator)(nil)

// ExcelizeReportGenerator implementa export.ExcelGenerator usando excelize.
type ExcelizeReportGenerator struct{}

// NewExcelizeReportGenerator construye el generador.
func NewExcelizeReportGenerator() *ExcelizeReportGenerator { return &ExcelizeReportGenerator{} }

// Products genera el reporte XLSX del inventario completo.
func (g *ExcelizeReportGenerator) Products(rows []repository.ProductReportRow) ([]byte, error) {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.Code, r.Name, r.Quantity, r.MinStock, r.Location, r.SupplierName, r.CreatedAt,
		})
	}
	return buildSheet(
		[]string{"Código", "Nombre", "Cantidad", "Stock mínimo", "Ubicación", "Proveedor", "Creado"},
		records,
	)
}

// Movements genera el reporte XLSX de movimientos (una fila por línea).
func (g *ExcelizeReportGenerator) Movements(rows []repository.MovementReportRow) ([]byte, error) {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.BatchCode, r.Type, r.Date.Format("02/01/2006 15:04"), r.ProductName,
			r.ProductCode, r.Quantity, r.TotalQuantity, r.UserName, r.Reason,
		})
	}
	return buildSheet(
		[]string{"Código", "Tipo", "Fecha", "Producto", "Código producto", "Cantidad", "Total lote", "Usuario", "Motivo"},
		records,
	)
}

func buildSheet(headings []string, records [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: crear estilo: %w", err)
	}

	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("excel: celda de encabezado: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: escribir encabezado: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("excel: aplicar estilo: %w", err)
		}
	}

	for rowIdx, record := range records {
		for colIdx, value := range record {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("excel: celda de datos: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("excel: escribir celda: %w", err)
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headings))
	if err == nil {
		_ = f.SetColWidth(sheetName, "A", lastCol, 18)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
