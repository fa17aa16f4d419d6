package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/application/inventory"
)

// MovementHandler maneja las peticiones HTTP de movimientos (protegido).
// Los lotes son inmutables: no hay update ni delete.
type MovementHandler struct {
	apply   *inventory.ApplyBatchUseCase
	queries *inventory.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(apply *inventory.ApplyBatchUseCase, queries *inventory.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{apply: apply, queries: queries}
}

// Create godoc
// @Summary      Registrar un movimiento simple (lote de una línea)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "producto, tipo y cantidad"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse  "incluye available en stock insuficiente"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	resp, err := h.apply.ApplyBatch(c.Context(), inventory.BatchInput{
		Items:  []inventory.BatchItem{{ProductID: in.ProductID, Quantity: in.Quantity}},
		Type:   in.Type,
		Reason: in.Reason,
		Notes:  in.Notes,
		Code:   in.Code,
		UserID: GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CreateBatch godoc
// @Summary      Registrar un lote de movimientos (todo o nada)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "líneas, tipo y motivo"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse  "incluye available en stock insuficiente"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/batch [post]
func (h *MovementHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	items := make([]inventory.BatchItem, 0, len(in.Movements))
	for _, m := range in.Movements {
		items = append(items, inventory.BatchItem{ProductID: m.ProductID, Quantity: m.Quantity})
	}
	resp, err := h.apply.ApplyBatch(c.Context(), inventory.BatchInput{
		Items:  items,
		Type:   in.Type,
		Reason: in.Reason,
		Notes:  in.Notes,
		Code:   in.Code,
		UserID: GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar lotes de movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "ENTRADA o SALIDA"
// @Param        startDate  query  string  false  "aaaa-mm-dd"
// @Param        endDate    query  string  false  "aaaa-mm-dd (inclusivo)"
// @Param        search     query  string  false  "nombre o código de producto"
// @Param        page       query  int     false  "página (desde 1)"
// @Param        limit      query  int     false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	resp, err := h.queries.List(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GenerateCode godoc
// @Summary      Proponer el siguiente código de lote libre (consultivo)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CodeResponse
// @Router       /api/movements/generate-code [get]
func (h *MovementHandler) GenerateCode(c *fiber.Ctx) error {
	code, err := h.queries.GenerateCode()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CodeResponse{Code: code})
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.queries.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return notFound(c, "movimiento no encontrado")
	}
	return c.JSON(resp)
}

// GetByCode godoc
// @Summary      Obtener lote por código
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código del lote (MOV-NNNNNN)"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/code/{code} [get]
func (h *MovementHandler) GetByCode(c *fiber.Ctx) error {
	resp, err := h.queries.GetByCode(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return notFound(c, "movimiento no encontrado")
	}
	return c.JSON(resp)
}
