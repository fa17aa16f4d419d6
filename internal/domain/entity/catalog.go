package entity

import "time"

// Brand representa una marca de equipos.
type Brand struct {
	ID        string
	Name      string
	Code      string // BRD-XXXX, opcional pero único si existe
	CreatedAt time.Time
}

// Model representa un modelo de equipo, opcionalmente asociado a una marca.
type Model struct {
	ID        string
	Name      string
	Code      string // MOD-XXXX
	BrandID   string
	CreatedAt time.Time
}

// Supplier representa un proveedor.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StorageLocation es una ubicación de almacenamiento con nombre propio.
// Los productos además guardan su ubicación como texto libre; el listado de
// ubicaciones une ambas fuentes.
type StorageLocation struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
