package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/application/inventory"
)

// DeliveryHandler registro y consulta de albaranes de entrada.
type DeliveryHandler struct {
	uc *inventory.DeliveryUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *inventory.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar albarán de entrada
// @Description  Cada línea genera un lote. Todo el registro es atómico.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Param        body  body  dto.RegisterDeliveryRequest  true  "Albarán"
// @Success      201   {object}  dto.DeliveryNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId}/deliveries [post]
func (h *DeliveryHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(c.Context(), c.Params("locationId"), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar albaranes del local
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        locationId  path   string  true   "ID del local"
// @Param        limit       query  int     false  "Tamaño de página"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.DeliveryListResponse
// @Router       /api/locations/{locationId}/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), c.Params("locationId"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener albarán con sus líneas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Param        id  path  string  true  "ID del albarán"
// @Success      200  {object}  dto.DeliveryNoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId}/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("locationId"), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "albarán no encontrado"})
	}
	return c.JSON(out)
}
