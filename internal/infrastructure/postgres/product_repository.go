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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, description, serial_number, quantity, min_stock, location, photo, brand_id, model_id, supplier_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para
// productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description, product.SerialNumber,
		product.Quantity, product.MinStock, product.Location, product.Photo,
		product.BrandID, product.ModelID, product.SupplierID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCode obtiene un producto por su código.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

// GetForUpdate bloquea la fila del producto y devuelve el stock persistido
// vigente. Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.SerialNumber, &p.Quantity, &p.MinStock,
		&p.Location, &p.Photo, &p.BrandID, &p.ModelID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// AdjustQuantity aplica quantity = quantity + delta sobre la fila ya
// bloqueada por GetForUpdate.
func (r *ProductRepo) AdjustQuantity(id string, delta int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza un producto. Nunca toca quantity ni code.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, serial_number = $4, min_stock = $5, location = $6,
		    photo = $7, brand_id = $8, model_id = $9, supplier_id = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.SerialNumber, product.MinStock,
		product.Location, product.Photo, product.BrandID, product.ModelID, product.SupplierID,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos con búsqueda y filtros dinámicos.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	where := productFilterConds(filter)

	countQb := squirrel.Select("COUNT(*)").From("products").PlaceholderFormat(squirrel.Dollar)
	qb := squirrel.Select(
		"id", "code", "name", "description", "serial_number", "quantity", "min_stock",
		"location", "photo", "brand_id", "model_id", "supplier_id", "created_at", "updated_at",
	).From("products").PlaceholderFormat(squirrel.Dollar)
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
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	qb = qb.OrderBy("created_at DESC")
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
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.SerialNumber, &p.Quantity,
			&p.MinStock, &p.Location, &p.Photo, &p.BrandID, &p.ModelID, &p.SupplierID,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

func productFilterConds(filter repository.ProductFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"code": like},
			squirrel.ILike{"serial_number": like},
			squirrel.ILike{"location": like},
		})
	}
	if filter.SupplierID != "" {
		conds = append(conds, squirrel.Eq{"supplier_id": filter.SupplierID})
	}
	if filter.Location != "" {
		conds = append(conds, squirrel.Eq{"location": filter.Location})
	}
	return conds
}

// ListLowStock devuelve los productos con quantity <= min_stock.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity <= min_stock ORDER BY quantity ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.SerialNumber, &p.Quantity,
			&p.MinStock, &p.Location, &p.Photo, &p.BrandID, &p.ModelID, &p.SupplierID,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListForReport devuelve las filas del reporte de inventario con el nombre
// del proveedor resuelto.
func (r *ProductRepo) ListForReport() ([]repository.ProductReportRow, error) {
	query := `
		SELECT p.code, p.name, p.quantity, p.min_stock, p.location,
		       COALESCE(s.name, ''), to_char(p.created_at, 'DD/MM/YYYY')
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		ORDER BY p.name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("product report: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductReportRow
	for rows.Next() {
		var row repository.ProductReportRow
		if err := rows.Scan(&row.Code, &row.Name, &row.Quantity, &row.MinStock,
			&row.Location, &row.SupplierName, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Delete elimina un producto. Si tiene movimientos la FK lo impide y se
// devuelve ErrConflict.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// MaxSequence devuelve la mayor secuencia numérica usada en códigos
// PREFIX-NNNNNN de productos.
func (r *ProductRepo) MaxSequence(prefix string) (int, error) {
	return maxSequence(r.q, "products", prefix)
}

// Exists indica si el código ya está en uso por algún producto.
func (r *ProductRepo) Exists(code string) (bool, error) {
	return codeExists(r.q, "products", code)
}
