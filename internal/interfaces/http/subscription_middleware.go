package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
)

// subscriptionChecker es el contrato mínimo que necesita el middleware.
// Lo implementa *usecase.SubscriptionUseCase; el uso de interfaz evita el
// import circular.
type subscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, userID string) (bool, error)
}

// RequireActiveSubscription devuelve un middleware Fiber que verifica que el
// negocio del usuario tiene suscripción activa (o trial vigente). Debe usarse
// DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 402 Payment Required → sin suscripción activa o trial vencido.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireActiveSubscription(checker subscriptionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		active, err := checker.HasActiveSubscription(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "no se pudo verificar la suscripción, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_REQUIRED",
				Message: "la suscripción no está activa o el periodo de prueba terminó",
			})
		}

		return c.Next()
	}
}
