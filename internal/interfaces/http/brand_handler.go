package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/application/usecase"
)

// BrandHandler maneja las peticiones HTTP de marcas (protegido).
type BrandHandler struct {
	uc *usecase.BrandUseCase
}

// NewBrandHandler construye el handler.
func NewBrandHandler(uc *usecase.BrandUseCase) *BrandHandler {
	return &BrandHandler{uc: uc}
}

// Create crea una marca (nombre único).
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GenerateCode propone un código de marca libre (consultivo).
func (h *BrandHandler) GenerateCode(c *fiber.Ctx) error {
	code, err := h.uc.GenerateCode()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CodeResponse{Code: code})
}

// List devuelve todas las marcas.
func (h *BrandHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update renombra una marca.
func (h *BrandHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return notFound(c, "marca no encontrada")
	}
	return c.JSON(resp)
}

// Delete elimina una marca sin productos asociados.
func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "marca eliminada"})
}
