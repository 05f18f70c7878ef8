package repository

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// SubscriptionRepository persistencia de suscripciones.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *entity.Subscription) error
	GetByBusiness(ctx context.Context, businessID string) (*entity.Subscription, error)
	// GetByUser devuelve la suscripción del negocio del usuario (como
	// propietario o por rol en alguno de sus locales).
	GetByUser(ctx context.Context, userID string) (*entity.Subscription, error)
	Update(ctx context.Context, s *entity.Subscription) error
}
