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

// ProductUseCase casos de uso CRUD del catálogo de productos. El catálogo
// pertenece al negocio y lo comparten todos sus locales; el local de la
// ruta solo sirve para resolver a qué negocio pertenece la operación.
type ProductUseCase struct {
	repo         repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, locationRepo repository.LocationRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, locationRepo: locationRepo}
}

// businessOf resuelve el negocio al que pertenece el local.
func (uc *ProductUseCase) businessOf(ctx context.Context, locationID string) (string, error) {
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return "", err
	}
	if location == nil {
		return "", domain.ErrNotFound
	}
	return location.BusinessID, nil
}

// Create crea un producto del catálogo. Devuelve ErrDuplicate si ya existe
// un producto con ese nombre en el negocio.
func (uc *ProductUseCase) Create(ctx context.Context, locationID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	storage := entity.StorageType(in.StorageType)
	if in.Name == "" || in.Unit == "" || !storage.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		Name:        in.Name,
		Unit:        in.Unit,
		StorageType: storage,
		GTIN:        in.GTIN,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del catálogo del negocio del local.
func (uc *ProductUseCase) GetByID(ctx context.Context, locationID, id string) (*dto.ProductResponse, error) {
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != businessID {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista el catálogo del negocio.
func (uc *ProductUseCase) List(ctx context.Context, locationID string) (*dto.ProductListResponse, error) {
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for i := range list {
		items = append(items, *toProductResponse(&list[i]))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(ctx context.Context, locationID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != businessID {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.StorageType != nil {
		storage := entity.StorageType(*in.StorageType)
		if !storage.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		product.StorageType = storage
	}
	if in.GTIN != nil {
		product.GTIN = in.GTIN
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, locationID, id string) error {
	businessID, err := uc.businessOf(ctx, locationID)
	if err != nil {
		return err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil || product.BusinessID != businessID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		Name:        p.Name,
		Unit:        p.Unit,
		StorageType: string(p.StorageType),
		GTIN:        p.GTIN,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
