package dto

import "time"

// CreateBrandRequest body para POST /api/brands.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Code string `json:"code" validate:"omitempty,max=30"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateModelRequest body para POST /api/models.
type CreateModelRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Code    string `json:"code" validate:"omitempty,max=30"`
	BrandID string `json:"brandId"`
}

// ModelResponse salida de un modelo.
type ModelResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	BrandID   string    `json:"brandId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Contact string `json:"contact" validate:"omitempty,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// LocationListResponse nombres de ubicaciones (guardadas + usadas en productos).
type LocationListResponse struct {
	Locations []string `json:"locations"`
}
