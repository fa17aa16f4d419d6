package repository

import (
	"time"

	"github.com/chcomputer/almacen-api/internal/domain/entity"
)

// BatchFilter filtros para el listado de lotes de movimiento.
type BatchFilter struct {
	Type      string // ENTRADA | SALIDA, vacío = todos
	StartDate *time.Time
	EndDate   *time.Time
	Search    string // nombre o código de producto en alguna línea
	Limit     int
	Offset    int
}

// MovementReportRow fila (lote, línea) para los reportes de exportación.
type MovementReportRow struct {
	BatchCode     string
	Type          string
	Date          time.Time
	ProductName   string
	ProductCode   string
	Quantity      int
	TotalQuantity int
	UserName      string
	Reason        string
	Notes         string
}

// MovementRepository define el puerto de persistencia para lotes y líneas de
// movimiento. Los lotes son inmutables: no hay Update ni Delete.
type MovementRepository interface {
	CreateBatch(batch *entity.MovementBatch) error
	CreateLine(line *entity.Movement) error
	GetBatchByID(id string) (*entity.MovementBatch, error)
	GetBatchByCode(code string) (*entity.MovementBatch, error)
	ListBatches(filter BatchFilter) ([]*entity.MovementBatch, int, error)
	ListLines(batchID string) ([]*entity.Movement, error)
	ListForReport(filter BatchFilter) ([]MovementReportRow, error)

	// codegen.CodeIndex para el esquema secuencial MOV-NNNNNN.
	MaxSequence(prefix string) (int, error)
	Exists(code string) (bool, error)
}
