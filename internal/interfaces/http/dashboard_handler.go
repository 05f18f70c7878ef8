package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/haccp-pro/internal/application/analytics"
)

// DashboardHandler panel operativo del local.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Panel del local
// @Description  Lotes por estado, alertas abiertas, traspasos pendientes y
// entradas del mes en curso.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/locations/{locationId}/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("locationId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
