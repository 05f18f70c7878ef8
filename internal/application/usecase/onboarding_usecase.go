package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/domain"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// TrialDays duración del periodo de prueba de una suscripción nueva.
const TrialDays = 30

// OnboardingTxRunner ejecuta el alta inicial (negocio + local + suscripción)
// dentro de una transacción, pasando repositorios atados a esa tx.
type OnboardingTxRunner interface {
	RunOnboarding(ctx context.Context, fn func(
		businessRepo repository.BusinessRepository,
		locationRepo repository.LocationRepository,
		subscriptionRepo repository.SubscriptionRepository,
	) error) error
}

// OnboardingUseCase alta inicial de un negocio con su primer local.
type OnboardingUseCase struct {
	businessRepo repository.BusinessRepository
	txRunner     OnboardingTxRunner
}

// NewOnboardingUseCase construye el caso de uso.
func NewOnboardingUseCase(businessRepo repository.BusinessRepository, txRunner OnboardingTxRunner) *OnboardingUseCase {
	return &OnboardingUseCase{businessRepo: businessRepo, txRunner: txRunner}
}

// Onboard crea negocio, primer local y suscripción en trial, todo en una
// transacción. Devuelve ErrDuplicate si el usuario ya tiene negocio.
func (uc *OnboardingUseCase) Onboard(ctx context.Context, ownerID string, in dto.OnboardingRequest) (*dto.OnboardingResponse, error) {
	locType := entity.LocationType(in.LocationType)
	if in.BusinessName == "" || in.LocationName == "" || !locType.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.businessRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	trialEnd := now.AddDate(0, 0, TrialDays)
	business := &entity.Business{
		ID:        uuid.New().String(),
		Name:      in.BusinessName,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	location := &entity.Location{
		ID:         uuid.New().String(),
		BusinessID: business.ID,
		Name:       in.LocationName,
		Type:       locType,
		Address:    in.Address,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	subscription := &entity.Subscription{
		ID:          uuid.New().String(),
		BusinessID:  business.ID,
		Status:      entity.SubscriptionTrial,
		Plan:        "trial",
		TrialEndsAt: &trialEnd,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunOnboarding(ctx, func(
		businessRepo repository.BusinessRepository,
		locationRepo repository.LocationRepository,
		subscriptionRepo repository.SubscriptionRepository,
	) error {
		if err := businessRepo.Create(ctx, business); err != nil {
			return err
		}
		if err := locationRepo.Create(ctx, location); err != nil {
			return err
		}
		return subscriptionRepo.Create(ctx, subscription)
	})
	if err != nil {
		return nil, err
	}

	return &dto.OnboardingResponse{
		Business: dto.BusinessResponse{
			ID:        business.ID,
			Name:      business.Name,
			OwnerID:   business.OwnerID,
			CreatedAt: business.CreatedAt,
		},
		Location: *toLocationResponse(location),
		Subscription: dto.SubscriptionResponse{
			ID:          subscription.ID,
			BusinessID:  subscription.BusinessID,
			Status:      string(subscription.Status),
			Plan:        subscription.Plan,
			TrialEndsAt: subscription.TrialEndsAt,
		},
	}, nil
}
