package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/application/ocr"
)

// OCRHandler extracción de datos de albaranes fotografiados.
type OCRHandler struct {
	uc *ocr.UseCase
}

// NewOCRHandler construye el handler.
func NewOCRHandler(uc *ocr.UseCase) *OCRHandler {
	return &OCRHandler{uc: uc}
}

// Extract godoc
// @Summary      Extraer datos de un albarán
// @Description  Devuelve un borrador (proveedor, fecha, líneas) que el usuario
// revisa antes de registrar la entrada. No escribe nada en inventario.
// @Tags         ocr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OCRRequest  true  "Imagen en base64 o URL"
// @Success      200   {object}  dto.OCRResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ocr/delivery-note [post]
func (h *OCRHandler) Extract(c *fiber.Ctx) error {
	var in dto.OCRRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Extract(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
