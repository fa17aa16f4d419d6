package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/application/usecase"
)

// LocationHandler maneja las ubicaciones de almacenamiento.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create registra una ubicación con nombre propio.
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	name, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": name})
}

// List devuelve los nombres de ubicación deduplicados y ordenados.
func (h *LocationHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
