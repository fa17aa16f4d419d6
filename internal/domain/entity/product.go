package entity

import "time"

// Product representa un equipo o artículo del almacén.
// Quantity es un total derivado: solo lo modifica el motor de movimientos
// dentro de su transacción, nunca el CRUD de productos.
type Product struct {
	ID           string
	Code         string // código único legible (PROD-000001)
	Name         string
	Description  string
	SerialNumber string
	Quantity     int // siempre >= 0
	MinStock     int // umbral de stock bajo: Quantity <= MinStock
	Location     string
	Photo        string
	BrandID      string
	ModelID      string
	SupplierID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el producto está en o por debajo de su stock mínimo.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}
