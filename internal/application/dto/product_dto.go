package dto

import "time"

// CreateProductRequest body para POST /api/products.
// Quantity es el stock inicial; después solo cambia vía movimientos.
type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Code         string `json:"code" validate:"omitempty,max=30"`
	BrandID      string `json:"brandId" validate:"required"`
	ModelID      string `json:"modelId" validate:"required"`
	SupplierID   string `json:"supplierId" validate:"required"`
	SerialNumber string `json:"serialNumber" validate:"required,min=1,max=100"`
	Quantity     int    `json:"quantity" validate:"omitempty,min=0"`
	MinStock     int    `json:"minStock" validate:"omitempty,min=0"`
	Location     string `json:"location" validate:"omitempty,max=200"`
	Photo        string `json:"photo" validate:"omitempty,max=500"`
	Description  string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// No incluye quantity: el stock solo se modifica con movimientos.
type UpdateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	BrandID      string `json:"brandId" validate:"required"`
	ModelID      string `json:"modelId" validate:"required"`
	SupplierID   string `json:"supplierId" validate:"required"`
	SerialNumber string `json:"serialNumber" validate:"required,min=1,max=100"`
	MinStock     int    `json:"minStock" validate:"omitempty,min=0"`
	Location     string `json:"location" validate:"omitempty,max=200"`
	Photo        string `json:"photo" validate:"omitempty,max=500"`
	Description  string `json:"description" validate:"omitempty,max=1000"`
}

// ListProductsRequest filtros de GET /api/products.
type ListProductsRequest struct {
	PageRequest
	Search     string `query:"search" validate:"omitempty,max=200"`
	SupplierID string `query:"supplierId"`
	Location   string `query:"location" validate:"omitempty,max=200"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	SerialNumber string    `json:"serialNumber"`
	Quantity     int       `json:"quantity"`
	MinStock     int       `json:"minStock"`
	Location     string    `json:"location,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	LowStock     bool      `json:"lowStock"`
	BrandID      string    `json:"brandId,omitempty"`
	ModelID      string    `json:"modelId,omitempty"`
	SupplierID   string    `json:"supplierId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination PageResponse      `json:"pagination"`
}
