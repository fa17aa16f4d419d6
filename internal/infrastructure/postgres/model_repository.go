package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chcomputer/almacen-api/internal/domain"
	"github.com/chcomputer/almacen-api/internal/domain/entity"
	"github.com/chcomputer/almacen-api/internal/domain/repository"
)

var _ repository.ModelRepository = (*ModelRepo)(nil)

// ModelRepo implementación del puerto ModelRepository sobre PostgreSQL.
type ModelRepo struct {
	q Querier
}

// NewModelRepository construye el adaptador de persistencia para modelos.
func NewModelRepository(q Querier) *ModelRepo {
	return &ModelRepo{q: q}
}

// Create persiste un modelo. brand_id vacío se guarda como NULL.
func (r *ModelRepo) Create(model *entity.Model) error {
	query := `INSERT INTO models (id, name, code, brand_id, created_at) VALUES ($1, $2, $3, NULLIF($4, ''), $5)`
	_, err := r.q.Exec(context.Background(), query,
		model.ID, model.Name, model.Code, model.BrandID, model.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert model: %w", err)
	}
	return nil
}

// GetByID obtiene un modelo, nil si no existe.
func (r *ModelRepo) GetByID(id string) (*entity.Model, error) {
	query := `SELECT id, name, code, COALESCE(brand_id, ''), created_at FROM models WHERE id = $1`
	var m entity.Model
	err := r.q.QueryRow(context.Background(), query, id).Scan(&m.ID, &m.Name, &m.Code, &m.BrandID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return &m, nil
}

// List devuelve todos los modelos ordenados por nombre.
func (r *ModelRepo) List() ([]*entity.Model, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, code, COALESCE(brand_id, ''), created_at FROM models ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var list []*entity.Model
	for rows.Next() {
		var m entity.Model
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.BrandID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update renombra un modelo o lo reasocia a otra marca.
func (r *ModelRepo) Update(model *entity.Model) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE models SET name = $2, brand_id = NULLIF($3, '') WHERE id = $1`,
		model.ID, model.Name, model.BrandID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update model: %w", err)
	}
	return nil
}

// HasProducts indica si algún producto referencia el modelo.
func (r *ModelRepo) HasProducts(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE model_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("model has products: %w", err)
	}
	return exists, nil
}

// Delete elimina un modelo.
func (r *ModelRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM models WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete model: %w", err)
	}
	return nil
}

// MaxSequence devuelve la mayor secuencia usada en códigos MOD-NNNN.
func (r *ModelRepo) MaxSequence(prefix string) (int, error) {
	return maxSequence(r.q, "models", prefix)
}

// Exists indica si el código ya está en uso por algún modelo.
func (r *ModelRepo) Exists(code string) (bool, error) {
	return codeExists(r.q, "models", code)
}
