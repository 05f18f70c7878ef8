package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/application/inventory"
)

// BatchHandler inventario por lotes: altas, consumo, caducidades y alertas.
type BatchHandler struct {
	uc *inventory.UseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *inventory.UseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create godoc
// @Summary      Alta manual de lote
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Param        body  body  dto.CreateBatchRequest  true  "Datos del lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId}/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateBatch(c.Context(), c.Params("locationId"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar lotes del local
// @Description  Ordenados por caducidad ascendente, sin fecha primero.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        locationId  path   string  true   "ID del local"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        status      query  string  false  "ok, warning, critical o expired"
// @Param        with_stock  query  bool    false  "Solo lotes con stock"
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/locations/{locationId}/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	var in dto.BatchListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.ListBatches(c.Context(), c.Params("locationId"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId}/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetBatch(c.Context(), c.Params("locationId"), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.JSON(out)
}

// Consume godoc
// @Summary      Consumir cantidad de un lote
// @Description  La cantidad restante nunca baja de cero.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Param        id  path  string  true  "ID del lote"
// @Param        body  body  dto.ConsumeBatchRequest  true  "Cantidad a consumir"
// @Success      200  {object}  dto.BatchResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId}/batches/{id}/consume [post]
func (h *BatchHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Consume(c.Context(), c.Params("locationId"), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateExpiry godoc
// @Summary      Corregir fecha de caducidad
// @Description  El lote se reclasifica con la nueva fecha. Fecha nula la elimina.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Param        id  path  string  true  "ID del lote"
// @Param        body  body  dto.UpdateBatchExpiryRequest  true  "Nueva fecha"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId}/batches/{id}/expiry [put]
func (h *BatchHandler) UpdateExpiry(c *fiber.Ctx) error {
	var in dto.UpdateBatchExpiryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateExpiry(c.Context(), c.Params("locationId"), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Acknowledge godoc
// @Summary      Registrar acción correctiva
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Param        id  path  string  true  "ID del lote"
// @Param        body  body  dto.AcknowledgeBatchRequest  true  "Acción realizada"
// @Success      200  {object}  dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId}/batches/{id}/acknowledge [post]
func (h *BatchHandler) Acknowledge(c *fiber.Ctx) error {
	var in dto.AcknowledgeBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Acknowledge(c.Context(), c.Params("locationId"), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Listar alertas de caducidad
// @Description  Lotes con stock en warning, critical o expired.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/locations/{locationId}/alerts [get]
func (h *BatchHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.ListAlerts(c.Context(), c.Params("locationId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de inventario por estado
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Success      200  {object}  dto.InventorySummaryResponse
// @Router       /api/locations/{locationId}/inventory/summary [get]
func (h *BatchHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), c.Params("locationId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// RefreshStatuses godoc
// @Summary      Recalcular estados de caducidad
// @Description  Reclasifica en bloque los lotes del local según la fecha actual.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Success      200  {object}  map[string]int64
// @Router       /api/locations/{locationId}/batches/refresh [post]
func (h *BatchHandler) RefreshStatuses(c *fiber.Ctx) error {
	updated, err := h.uc.RefreshStatuses(c.Context(), c.Params("locationId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}
