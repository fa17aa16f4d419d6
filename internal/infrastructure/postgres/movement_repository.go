package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/chcomputer/almacen-api/internal/domain"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre
// PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para lotes y
// líneas de movimiento. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// CreateBatch inserta la cabecera del lote. La colisión de código se
// devuelve como ErrDuplicate para que el motor reintente.
func (r *MovementRepo) CreateBatch(batch *entity.MovementBatch) error {
	query := `
		INSERT INTO movement_batches (id, code, type, total_quantity, reason, notes, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Code, batch.Type, batch.TotalQuantity,
		batch.Reason, batch.Notes, batch.UserID, batch.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement batch: %w", err)
	}
	return nil
}

// CreateLine inserta una línea del lote.
func (r *MovementRepo) CreateLine(line *entity.Movement) error {
	query := `
		INSERT INTO movements (id, batch_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, line.ID, line.BatchID, line.ProductID, line.Quantity)
	if err != nil {
		return fmt.Errorf("insert movement line: %w", err)
	}
	return nil
}

const batchColumns = `id, code, type, total_quantity, reason, notes, user_id, created_at`

// GetBatchByID obtiene la cabecera de un lote, nil si no existe.
func (r *MovementRepo) GetBatchByID(id string) (*entity.MovementBatch, error) {
	return r.getBatch(`SELECT `+batchColumns+` FROM movement_batches WHERE id = $1`, id)
}

// GetBatchByCode obtiene la cabecera de un lote por código, nil si no existe.
func (r *MovementRepo) GetBatchByCode(code string) (*entity.MovementBatch, error) {
	return r.getBatch(`SELECT `+batchColumns+` FROM movement_batches WHERE code = $1`, code)
}

func (r *MovementRepo) getBatch(query string, arg any) (*entity.MovementBatch, error) {
	var b entity.MovementBatch
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&b.ID, &b.Code, &b.Type, &b.TotalQuantity, &b.Reason, &b.Notes, &b.UserID, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement batch: %w", err)
	}
	return &b, nil
}

// ListBatches lista lotes con filtros de tipo, rango de fechas y búsqueda
// por producto.
func (r *MovementRepo) ListBatches(filter repository.BatchFilter) ([]*entity.MovementBatch, int, error) {
	where := batchFilterConds(filter)

	countQb := squirrel.Select("COUNT(*)").From("movement_batches b").PlaceholderFormat(squirrel.Dollar)
	qb := squirrel.Select(
		"b.id", "b.code", "b.type", "b.total_quantity", "b.reason", "b.notes", "b.user_id", "b.created_at",
	).From("movement_batches b").PlaceholderFormat(squirrel.Dollar)
	if len(where) > 0 {
		countQb = countQb.Where(where)
		qb = qb.Where(where)
	}

	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	total := 0
	if err := r.q.QueryRow(context.Background(), countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movement batches: %w", err)
	}

	qb = qb.OrderBy("b.created_at DESC")
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movement batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementBatch
	for rows.Next() {
		var b entity.MovementBatch
		if err := rows.Scan(&b.ID, &b.Code, &b.Type, &b.TotalQuantity, &b.Reason, &b.Notes,
			&b.UserID, &b.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan movement batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

func batchFilterConds(filter repository.BatchFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Type != "" {
		conds = append(conds, squirrel.Eq{"b.type": filter.Type})
	}
	if filter.StartDate != nil {
		conds = append(conds, squirrel.GtOrEq{"b.created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		conds = append(conds, squirrel.LtOrEq{"b.created_at": *filter.EndDate})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Expr(
			`EXISTS (
				SELECT 1 FROM movements m
				JOIN products p ON p.id = m.product_id
				WHERE m.batch_id = b.id AND (p.name ILIKE ? OR p.code ILIKE ?)
			)`, like, like))
	}
	return conds
}

// ListLines devuelve las líneas de un lote en orden de inserción.
func (r *MovementRepo) ListLines(batchID string) ([]*entity.Movement, error) {
	query := `
		SELECT id, batch_id, product_id, quantity
		FROM movements WHERE batch_id = $1 ORDER BY seq ASC`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.BatchID, &m.ProductID, &m.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListForReport devuelve las filas (lote, línea) para exportación, con
// producto y usuario resueltos.
func (r *MovementRepo) ListForReport(filter repository.BatchFilter) ([]repository.MovementReportRow, error) {
	qb := squirrel.Select(
		"b.code", "b.type", "b.created_at", "p.name", "p.code",
		"m.quantity", "b.total_quantity", "COALESCE(u.name, '')", "b.reason", "b.notes",
	).From("movement_batches b").
		Join("movements m ON m.batch_id = b.id").
		Join("products p ON p.id = m.product_id").
		LeftJoin("users u ON u.id = b.user_id").
		PlaceholderFormat(squirrel.Dollar).
		OrderBy("b.created_at DESC")
	if where := batchFilterConds(filter); len(where) > 0 {
		qb = qb.Where(where)
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report query: %w", err)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("movement report: %w", err)
	}
	defer rows.Close()

	var out []repository.MovementReportRow
	for rows.Next() {
		var row repository.MovementReportRow
		if err := rows.Scan(&row.BatchCode, &row.Type, &row.Date, &row.ProductName, &row.ProductCode,
			&row.Quantity, &row.TotalQuantity, &row.UserName, &row.Reason, &row.Notes); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// MaxSequence devuelve la mayor secuencia usada en códigos MOV-NNNNNN.
func (r *MovementRepo) MaxSequence(prefix string) (int, error) {
	return maxSequence(r.q, "movement_batches", prefix)
}

// Exists indica si el código ya está en uso por algún lote.
func (r *MovementRepo) Exists(code string) (bool, error) {
	return codeExists(r.q, "movement_batches", code)
}
