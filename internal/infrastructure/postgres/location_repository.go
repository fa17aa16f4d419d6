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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para
// ubicaciones de almacenamiento.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación con nombre propio.
func (r *LocationRepo) Create(location *entity.StorageLocation) error {
	query := `INSERT INTO storage_locations (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, location.ID, location.Name, location.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert storage location: %w", err)
	}
	return nil
}

// GetByName obtiene una ubicación guardada por nombre, nil si no existe.
func (r *LocationRepo) GetByName(name string) (*entity.StorageLocation, error) {
	var l entity.StorageLocation
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, created_at FROM storage_locations WHERE name = $1`, name).Scan(
		&l.ID, &l.Name, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage location: %w", err)
	}
	return &l, nil
}

// ListNames devuelve los nombres de ubicaciones guardadas.
func (r *LocationRepo) ListNames() ([]string, error) {
	return r.listStrings(`SELECT name FROM storage_locations ORDER BY name ASC`)
}

// ProductLocations devuelve las ubicaciones distintas escritas en productos.
func (r *LocationRepo) ProductLocations() ([]string, error) {
	return r.listStrings(`SELECT DISTINCT location FROM products WHERE location <> '' ORDER BY location ASC`)
}

func (r *LocationRepo) listStrings(query string) ([]string, error) {
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
