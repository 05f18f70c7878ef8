package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// SubscriptionUseCase consultas de suscripción para el gate de acceso.
type SubscriptionUseCase struct {
	repo repository.SubscriptionRepository
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(repo repository.SubscriptionRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{repo: repo}
}

// HasActiveSubscription indica si el usuario puede operar: suscripción
// activa, o trial cuya fecha de fin no haya pasado. Un usuario sin negocio
// asociado (recién registrado, antes del onboarding) no tiene suscripción.
func (uc *SubscriptionUseCase) HasActiveSubscription(ctx context.Context, userID string) (bool, error) {
	sub, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return false, nil
	}
	if !sub.Status.AllowsAccess() {
		return false, nil
	}
	if sub.Status == entity.SubscriptionTrial && sub.TrialEndsAt != nil && sub.TrialEndsAt.Before(time.Now()) {
		return false, nil
	}
	return true, nil
}
