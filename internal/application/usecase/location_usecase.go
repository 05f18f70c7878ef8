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

// LocationUseCase gestión de locales y de roles por local.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
	businessRepo repository.BusinessRepository
	accessRepo   repository.AccessRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository, businessRepo repository.BusinessRepository, accessRepo repository.AccessRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo, businessRepo: businessRepo, accessRepo: accessRepo}
}

// Create crea un local en el negocio del usuario. Solo el propietario.
func (uc *LocationUseCase) Create(ctx context.Context, userID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	locType := entity.LocationType(in.Type)
	if in.Name == "" || !locType.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	business, err := uc.businessRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	location := &entity.Location{
		ID:         uuid.New().String(),
		BusinessID: business.ID,
		Name:       in.Name,
		Type:       locType,
		Address:    in.Address,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// ListAccessible lista los locales a los que el usuario puede acceder.
func (uc *LocationUseCase) ListAccessible(ctx context.Context, userID string) (*dto.LocationListResponse, error) {
	list, err := uc.locationRepo.ListAccessible(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for i := range list {
		items = append(items, *toLocationResponse(&list[i]))
	}
	return &dto.LocationListResponse{Items: items}, nil
}

// GetByID obtiene un local.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// Update actualiza nombre, tipo o dirección de un local.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.Type != nil {
		locType := entity.LocationType(*in.Type)
		if !locType.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		location.Type = locType
	}
	if in.Address != nil {
		location.Address = in.Address
	}
	if in.IsActive != nil {
		location.IsActive = *in.IsActive
	}
	location.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Delete elimina un local.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.locationRepo.Delete(ctx, id)
}

// AssignRole asigna rol a un usuario en el local.
func (uc *LocationUseCase) AssignRole(ctx context.Context, locationID string, in dto.AssignRoleRequest) error {
	role := entity.UserRole(in.Role)
	if in.UserID == "" || !role.IsValid() {
		return domain.ErrInvalidInput
	}
	return uc.accessRepo.AssignRole(ctx, &entity.LocationRole{
		ID:         uuid.New().String(),
		UserID:     in.UserID,
		LocationID: locationID,
		Role:       role,
		CreatedAt:  time.Now(),
	})
}

// ListRoles lista las asignaciones de rol del local.
func (uc *LocationUseCase) ListRoles(ctx context.Context, locationID string) ([]entity.LocationRole, error) {
	return uc.accessRepo.ListRolesByLocation(ctx, locationID)
}

// RemoveRole retira el rol de un usuario en el local.
func (uc *LocationUseCase) RemoveRole(ctx context.Context, locationID, userID string) error {
	return uc.accessRepo.RemoveRole(ctx, userID, locationID)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:         l.ID,
		BusinessID: l.BusinessID,
		Name:       l.Name,
		Type:       string(l.Type),
		Address:    l.Address,
		IsActive:   l.IsActive,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
