package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chcomputer/almacen-api/internal/application/analytics"
)

// DashboardHandler estadísticas de la pantalla principal.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas del dashboard
// @Description  Totales de inventario, movimientos recientes, productos más movidos y tendencia semanal
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200 {object} dto.DashboardStatsResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	resp, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
