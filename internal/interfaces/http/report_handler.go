package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/application/report"
)

// ReportHandler informes HACCP mensuales.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar informe HACCP mensual
// @Description  Devuelve el PDF del periodo y registra la generación.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        locationId  path   string  true   "ID del local"
// @Param        year        query  int     true   "Año"
// @Param        month       query  int     true   "Mes (1-12)"
// @Param        signed_by   query  string  false  "Responsable que firma el informe"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId}/reports/haccp [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.HaccpReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.GenerateMonthly(c.Context(), c.Params("locationId"), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.FileName+`"`)
	return c.Send(out.PDF)
}

// History godoc
// @Summary      Histórico de informes generados
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Success      200  {object}  dto.HaccpReportListResponse
// @Router       /api/locations/{locationId}/reports/haccp/history [get]
func (h *ReportHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.ListHistory(c.Context(), c.Params("locationId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
