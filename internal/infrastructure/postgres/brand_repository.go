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

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de persistencia para marcas.
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// Create persiste una marca.
func (r *BrandRepo) Create(brand *entity.Brand) error {
	query := `INSERT INTO brands (id, name, code, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, brand.ID, brand.Name, brand.Code, brand.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetByID obtiene una marca, nil si no existe.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	return r.getOne(`SELECT id, name, code, created_at FROM brands WHERE id = $1`, id)
}

// GetByName obtiene una marca por nombre exacto, nil si no existe.
func (r *BrandRepo) GetByName(name string) (*entity.Brand, error) {
	return r.getOne(`SELECT id, name, code, created_at FROM brands WHERE name = $1`, name)
}

func (r *BrandRepo) getOne(query string, arg any) (*entity.Brand, error) {
	var b entity.Brand
	err := r.q.QueryRow(context.Background(), query, arg).Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// List devuelve todas las marcas ordenadas por nombre.
func (r *BrandRepo) List() ([]*entity.Brand, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, code, created_at FROM brands ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update renombra una marca.
func (r *BrandRepo) Update(brand *entity.Brand) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE brands SET name = $2 WHERE id = $1`, brand.ID, brand.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update brand: %w", err)
	}
	return nil
}

// HasProducts indica si algún producto referencia la marca.
func (r *BrandRepo) HasProducts(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE brand_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("brand has products: %w", err)
	}
	return exists, nil
}

// Delete elimina una marca.
func (r *BrandRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete brand: %w", err)
	}
	return nil
}

// MaxSequence devuelve la mayor secuencia usada en códigos BRD-NNNN.
func (r *BrandRepo) MaxSequence(prefix string) (int, error) {
	return maxSequence(r.q, "brands", prefix)
}

// Exists indica si el código ya está en uso por alguna marca.
func (r *BrandRepo) Exists(code string) (bool, error) {
	return codeExists(r.q, "brands", code)
}
