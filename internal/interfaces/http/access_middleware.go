package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
)

// accessChecker contrato mínimo para resolver acceso a locales.
// Lo implementa repository.AccessRepository vía su adaptador PostgreSQL.
type accessChecker interface {
	HasLocationAccess(ctx context.Context, userID, locationID string) (bool, error)
	IsLocationManager(ctx context.Context, userID, locationID string) (bool, error)
}

// RequireLocationAccess verifica que el usuario puede acceder al local de la
// ruta (:locationId): propietario del negocio o rol asignado en el local.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireLocationAccess(checker accessChecker) fiber.Handler {
	return requireLocation(checker.HasLocationAccess, "NO_LOCATION_ACCESS", "sin acceso a este local")
}

// RequireLocationManager verifica que el usuario gestiona el local de la
// ruta: propietario del negocio o rol admin en el local.
func RequireLocationManager(checker accessChecker) fiber.Handler {
	return requireLocation(checker.IsLocationManager, "NOT_LOCATION_MANAGER", "se requiere rol admin en este local")
}

func requireLocation(check func(ctx context.Context, userID, locationID string) (bool, error), code, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}
		locationID := c.Params("locationId")
		if locationID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "MISSING_LOCATION",
				Message: "locationId es requerido",
			})
		}

		ok, err := check(c.Context(), userID, locationID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACCESS_CHECK_FAILED",
				Message: "no se pudo verificar el acceso, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    code,
				Message: message,
			})
		}
		return c.Next()
	}
}
