package repository

import "github.com/chcomputer/almacen-api/internal/domain/entity"

// BrandRepository define el puerto de persistencia para Brand.
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	GetByName(name string) (*entity.Brand, error)
	List() ([]*entity.Brand, error)
	Update(brand *entity.Brand) error
	// HasProducts indica si hay productos asociados (bloquea el borrado).
	HasProducts(id string) (bool, error)
	Delete(id string) error

	// codegen.CodeIndex para el esquema aleatorio BRD-XXXX.
	MaxSequence(prefix string) (int, error)
	Exists(code string) (bool, error)
}

// ModelRepository define el puerto de persistencia para Model.
type ModelRepository interface {
	Create(model *entity.Model) error
	GetByID(id string) (*entity.Model, error)
	List() ([]*entity.Model, error)
	Update(model *entity.Model) error
	HasProducts(id string) (bool, error)
	Delete(id string) error

	MaxSequence(prefix string) (int, error)
	Exists(code string) (bool, error)
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	HasProducts(id string) (bool, error)
	Delete(id string) error
}

// LocationRepository define el puerto para ubicaciones de almacenamiento.
type LocationRepository interface {
	Create(location *entity.StorageLocation) error
	GetByName(name string) (*entity.StorageLocation, error)
	// ListNames devuelve los nombres de ubicaciones guardadas.
	ListNames() ([]string, error)
	// ProductLocations devuelve las ubicaciones distintas usadas en productos.
	ProductLocations() ([]string, error)
}
