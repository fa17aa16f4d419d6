package dto

import "time"

// CreateMovementRequest body para POST /api/movements (lote de una línea).
type CreateMovementRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=ENTRADA SALIDA"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
	Notes     string `json:"notes" validate:"omitempty,max=1000"`
	Code      string `json:"code" validate:"omitempty,max=30"`
}

// MovementItemRequest una línea dentro de un lote múltiple.
type MovementItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateBatchRequest body para POST /api/movements/batch.
type CreateBatchRequest struct {
	Movements []MovementItemRequest `json:"movements" validate:"required,min=1,dive"`
	Type      string                `json:"type" validate:"required,oneof=ENTRADA SALIDA"`
	Reason    string                `json:"reason" validate:"omitempty,max=500"`
	Notes     string                `json:"notes" validate:"omitempty,max=1000"`
	Code      string                `json:"code" validate:"omitempty,max=30"`
}

// ListMovementsRequest filtros de GET /api/movements.
type ListMovementsRequest struct {
	PageRequest
	Type      string `query:"type" validate:"omitempty,oneof=ENTRADA SALIDA"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Search    string `query:"search" validate:"omitempty,max=200"`
}

// MovementLineResponse línea de un lote con su producto.
type MovementLineResponse struct {
	ID       string              `json:"id"`
	Quantity int                 `json:"quantity"`
	Product  ProductBriefPayload `json:"product"`
}

// ProductBriefPayload referencia mínima al producto dentro de un lote.
type ProductBriefPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
	Location string `json:"location,omitempty"`
}

// UserBriefPayload referencia mínima al usuario creador.
type UserBriefPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BatchResponse lote completo con líneas y creador.
type BatchResponse struct {
	ID            string                 `json:"id"`
	Code          string                 `json:"code"`
	Type          string                 `json:"type"`
	TotalQuantity int                    `json:"totalQuantity"`
	Reason        string                 `json:"reason,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	User          UserBriefPayload       `json:"user"`
	Movements     []MovementLineResponse `json:"movements"`
}

// BatchListResponse listado paginado de lotes.
type BatchListResponse struct {
	Movements  []BatchResponse `json:"movements"`
	Pagination PageResponse    `json:"pagination"`
}
