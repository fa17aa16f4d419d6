package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/chcomputer/almacen-api/internal/domain"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

// PDFGenerator genera los reportes PDF (maroto).
type PDFGenerator interface {
	Products(rows []repository.ProductReportRow) ([]byte, error)
	Movements(rows []repository.MovementReportRow) ([]byte, error)
}

// ExcelGenerator genera los reportes XLSX (excelize).
type ExcelGenerator interface {
	Products(rows []repository.ProductReportRow) ([]byte, error)
	Movements(rows []repository.MovementReportRow) ([]byte, error)
}

// File un archivo exportado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UseCase exporta inventario y movimientos en CSV, XLSX y PDF.
type UseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	pdf         PDFGenerator
	excel       ExcelGenerator
}

// NewUseCase construye el caso de uso de exportación.
func NewUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	pdf PDFGenerator,
	excel ExcelGenerator,
) *UseCase {
	return &UseCase{productRepo: productRepo, movRepo: movRepo, pdf: pdf, excel: excel}
}

// Products exporta el inventario completo. format: csv | excel | pdf.
func (uc *UseCase) Products(format string) (*File, error) {
	rows, err := uc.productRepo.ListForReport()
	if err != nil {
		return nil, err
	}
	stamp := time.Now().Format("2006-01-02")
	switch format {
	case "csv":
		data, err := productsCSV(rows)
		if err != nil {
			return nil, err
		}
		return &File{Name: "inventario_" + stamp + ".csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
	case "excel":
		data, err := uc.excel.Products(rows)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        "inventario_" + stamp + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case "pdf":
		data, err := uc.pdf.Products(rows)
		if err != nil {
			return nil, err
		}
		return &File{Name: "inventario_" + stamp + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, fmt.Errorf("%w: formato de exportación no soportado: %q", domain.ErrInvalidInput, format)
	}
}

// Movements exporta los movimientos que cumplen el filtro. format: csv |
// excel | pdf.
func (uc *UseCase) Movements(format string, filter repository.BatchFilter) (*File, error) {
	rows, err := uc.movRepo.ListForReport(filter)
	if err != nil {
		return nil, err
	}
	stamp := time.Now().Format("2006-01-02")
	switch format {
	case "csv":
		data, err := movementsCSV(rows)
		if err != nil {
			return nil, err
		}
		return &File{Name: "movimientos_" + stamp + ".csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
	case "excel":
		data, err := uc.excel.Movements(rows)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        "movimientos_" + stamp + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case "pdf":
		data, err := uc.pdf.Movements(rows)
		if err != nil {
			return nil, err
		}
		return &File{Name: "movimientos_" + stamp + ".pdf", ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, fmt.Errorf("%w: formato de exportación no soportado: %q", domain.ErrInvalidInput, format)
	}
}

// utf8BOM hace que Excel abra los CSV con acentos correctos.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func productsCSV(rows []repository.ProductReportRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Código", "Nombre", "Cantidad", "Stock mínimo", "Ubicación", "Proveedor", "Creado"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.Code,
			r.Name,
			strconv.Itoa(r.Quantity),
			strconv.Itoa(r.MinStock),
			r.Location,
			r.SupplierName,
			r.CreatedAt,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func movementsCSV(rows []repository.MovementReportRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Código", "Tipo", "Fecha", "Producto", "Código producto", "Cantidad", "Total lote", "Usuario", "Motivo"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.BatchCode,
			r.Type,
			r.Date.Format("02/01/2006 15:04"),
			r.ProductName,
			r.ProductCode,
			strconv.Itoa(r.Quantity),
			strconv.Itoa(r.TotalQuantity),
			r.UserName,
			r.Reason,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
