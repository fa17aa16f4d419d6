package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chcomputer/almacen-api/internal/application/dto"
	"github.com/chcomputer/almacen-api/internal/application/export"
	"github.com/chcomputer/almacen-api/internal/application/inventory"
)

// ExportHandler descargas de inventario y movimientos (csv, excel, pdf).
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Products godoc
// @Summary      Exportar inventario
// @Tags         export
// @Security     Bearer
// @Param        format query string true "csv | excel | pdf"
// @Success      200 {file} binary
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/export/products [get]
func (h *ExportHandler) Products(c *fiber.Ctx) error {
	file, err := h.uc.Products(c.Query("format", "csv"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

// Movements godoc
// @Summary      Exportar movimientos
// @Description  Acepta los mismos filtros del listado: type, startDate, endDate, search
// @Tags         export
// @Security     Bearer
// @Param        format query string true "csv | excel | pdf"
// @Success      200 {file} binary
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/export/movements [get]
func (h *ExportHandler) Movements(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	file, err := h.uc.Movements(c.Query("format", "csv"), inventory.ToBatchFilter(in))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *export.File) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	return c.Send(file.Data)
}
