package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/application/usecase"
)

// LocationHandler gestión de locales y roles por local.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear local
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Datos del local"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar locales accesibles
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAccessible(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener local
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("locationId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar local
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Param        body  body  dto.UpdateLocationRequest  true  "Cambios"
// @Success      200   {object}  dto.LocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("locationId"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar local
// @Tags         locations
// @Security     Bearer
// @Param        locationId  path  string  true  "ID del local"
// @Success      204
// @Router       /api/locations/{locationId} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("locationId")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignRole godoc
// @Summary      Asignar rol en el local
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Param        locationId  path  string  true  "ID del local"
// @Param        body  body  dto.AssignRoleRequest  true  "Usuario y rol"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/locations/{locationId}/roles [post]
func (h *LocationHandler) AssignRole(c *fiber.Ctx) error {
	var in dto.AssignRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AssignRole(c.Context(), c.Params("locationId"), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRoles godoc
// @Summary      Listar roles del local
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "ID del local"
// @Success      200
// @Router       /api/locations/{locationId}/roles [get]
func (h *LocationHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.uc.ListRoles(c.Context(), c.Params("locationId"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// RemoveRole godoc
// @Summary      Retirar rol en el local
// @Tags         locations
// @Security     Bearer
// @Param        locationId  path  string  true  "ID del local"
// @Param        userId      path  string  true  "ID del usuario"
// @Success      204
// @Router       /api/locations/{locationId}/roles/{userId} [delete]
func (h *LocationHandler) RemoveRole(c *fiber.Ctx) error {
	if err := h.uc.RemoveRole(c.Context(), c.Params("locationId"), c.Params("userId")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
