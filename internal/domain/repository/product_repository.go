package repository

import "github.com/chcomputer/almacen-api/internal/domain/entity"

// ProductFilter filtros para el listado de productos.
type ProductFilter struct {
	Search     string // nombre, código, ubicación o número de serie (insensible a mayúsculas)
	SupplierID string
	Location   string
	Limit      int
	Offset     int
}

// ProductReportRow fila de producto para los reportes de exportación.
type ProductReportRow struct {
	Code         string
	Name         string
	Quantity     int
	MinStock     int
	Location     string
	SupplierName string
	CreatedAt    string // dd/mm/aaaa
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// AdjustQuantity y GetForUpdate existen solo para el motor de movimientos:
// ningún otro componente escribe quantity.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y devuelve el stock
	// persistido actual. Usar solo dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	// AdjustQuantity aplica quantity = quantity + delta (delta negativo resta).
	AdjustQuantity(id string, delta int) error
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, int, error)
	ListLowStock() ([]*entity.Product, error)
	ListForReport() ([]ProductReportRow, error)
	Delete(id string) error

	// codegen.CodeIndex para el esquema secuencial PROD-NNNNNN.
	MaxSequence(prefix string) (int, error)
	Exists(code string) (bool, error)
}
