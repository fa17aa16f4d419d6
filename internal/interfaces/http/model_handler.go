package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/application/usecase"
)

// ModelHandler maneja las peticiones HTTP de modelos (protegido).
type ModelHandler struct {
	uc *usecase.ModelUseCase
}

// NewModelHandler construye el handler.
func NewModelHandler(uc *usecase.ModelUseCase) *ModelHandler {
	return &ModelHandler{uc: uc}
}

// Create crea un modelo, opcionalmente asociado a una marca.
func (h *ModelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateModelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GenerateCode propone un código de modelo libre (consultivo).
func (h *ModelHandler) GenerateCode(c *fiber.Ctx) error {
	code, err := h.uc.GenerateCode()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CodeResponse{Code: code})
}

// List devuelve todos los modelos.
func (h *ModelHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update renombra un modelo o lo reasocia a otra marca.
func (h *ModelHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateModelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return notFound(c, "modelo no encontrado")
	}
	return c.JSON(resp)
}

// Delete elimina un modelo sin productos asociados.
func (h *ModelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "modelo eliminado"})
}
