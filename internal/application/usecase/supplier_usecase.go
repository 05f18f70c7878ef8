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

// SupplierUseCase casos de uso CRUD de proveedores. Como el catálogo de
// productos, los proveedores son del negocio y los comparten sus locales.
type SupplierUseCase struct {
	repo         repository.SupplierRepository
	locationRepo repository.LocationRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, locationRepo repository.LocationRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, locationRepo: locationRepo}
}

func (uc *SupplierUseCase) businessOf(ctx context.Context, locationID string) (string, error) {
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return "", err
	}
	if location == nil {
		return "", domain.ErrNotFound
	}
	return location.BusinessID, nil
}

// Create crea un proveedor del negocio.
func (uc *SupplierUseCase) Create(ctx context.Context, locationID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       in.Name,
		TaxID:      in.TaxID,
		Phone:      in.Phone,
		Email:      in.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor del negocio del local.
func (uc *SupplierUseCase) GetByID(ctx context.Context, locationID, id string) (*dto.SupplierResponse, error) {
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.BusinessID != businessID {
		return nil, nil
	}
	return toSupplierResponse(supplier), nil
}

// List lista los proveedores del negocio.
func (uc *SupplierUseCase) List(ctx context.Context, locationID string) (*dto.SupplierListResponse, error) {
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for i := range list {
		items = append(items, *toSupplierResponse(&list[i]))
	}
	return &dto.SupplierListResponse{Items: items}, nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, locationID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.BusinessID != businessID {
		return nil, nil
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.TaxID != nil {
		supplier.TaxID = in.TaxID
	}
	if in.Phone != nil {
		supplier.Phone = in.Phone
	}
	if in.Email != nil {
		supplier.Email = in.Email
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, locationID, id string) error {
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return err
	}
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil || supplier.BusinessID != businessID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		Name:       s.Name,
		TaxID:      s.TaxID,
		Phone:      s.Phone,
		Email:      s.Email,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
