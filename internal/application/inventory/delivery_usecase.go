package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/domain"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/haccp"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// DeliveryUseCase registro de entradas de mercancía. Cada línea del albarán
// genera un lote; todo el registro es atómico.
type DeliveryUseCase struct {
	noteRepo     repository.DeliveryNoteRepository
	locationRepo repository.LocationRepository
	txRunner     TxRunner
	classifier   *haccp.Classifier
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(noteRepo repository.DeliveryNoteRepository, locationRepo repository.LocationRepository, txRunner TxRunner, classifier *haccp.Classifier) *DeliveryUseCase {
	return &DeliveryUseCase{noteRepo: noteRepo, locationRepo: locationRepo, txRunner: txRunner, classifier: classifier}
}

// Register registra un albarán: proveedor (resuelto o creado por nombre),
// cabecera, líneas y un lote por línea, todo en una transacción. Productos
// y proveedores se resuelven contra el catálogo del negocio del local; los
// desconocidos se crean (con la conservación de la línea, o ambient si la
// línea no la trae).
func (uc *DeliveryUseCase) Register(ctx context.Context, locationID, userID string, in dto.RegisterDeliveryRequest) (*dto.DeliveryNoteResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	deliveryDate, err := time.Parse(dateLayout, in.DeliveryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if !item.Quantity.IsPositive() || item.Unit == "" {
			return nil, domain.ErrInvalidInput
		}
		if item.ProductID == nil && (item.ProductName == nil || strings.TrimSpace(*item.ProductName) == "") {
			return nil, domain.ErrInvalidInput
		}
		if item.StorageType != nil && !entity.StorageType(*item.StorageType).IsValid() {
			return nil, domain.ErrInvalidInput
		}
	}

	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	businessID := location.BusinessID

	now := time.Now()
	note := &entity.DeliveryNote{
		ID:           uuid.New().String(),
		LocationID:   locationID,
		SupplierID:   in.SupplierID,
		DeliveryDate: deliveryDate,
		Reference:    in.Reference,
		ImageURL:     in.ImageURL,
		Notes:        in.Notes,
		RegisteredBy: userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	itemsResp := make([]dto.DeliveryItemResponse, 0, len(in.Items))

	err = uc.txRunner.Run(ctx, func(
		noteRepo repository.DeliveryNoteRepository,
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		if note.SupplierID == nil && in.SupplierName != nil && strings.TrimSpace(*in.SupplierName) != "" {
			supplierID, err := uc.resolveSupplier(ctx, supplierRepo, businessID, *in.SupplierName, now)
			if err != nil {
				return err
			}
			note.SupplierID = &supplierID
		}
		if err := noteRepo.Create(ctx, note); err != nil {
			return err
		}
		for _, item := range in.Items {
			product, err := uc.resolveProduct(ctx, productRepo, businessID, item, now)
			if err != nil {
				return err
			}
			expiry, err := parseDate(item.ExpiryDate)
			if err != nil {
				return err
			}
			noteItem := &entity.DeliveryNoteItem{
				ID:             uuid.New().String(),
				DeliveryNoteID: note.ID,
				ProductID:      product.ID,
				Quantity:       item.Quantity,
				Unit:           item.Unit,
				ExpiryDate:     expiry,
				CreatedAt:      now,
			}
			if err := noteRepo.CreateItem(ctx, noteItem); err != nil {
				return err
			}
			storage := product.StorageType
			if item.StorageType != nil {
				storage = entity.StorageType(*item.StorageType)
			}
			batch := &entity.Batch{
				ID:                 uuid.New().String(),
				LocationID:         locationID,
				ProductID:          product.ID,
				SupplierID:         note.SupplierID,
				DeliveryNoteItemID: &noteItem.ID,
				Quantity:           item.Quantity,
				RemainingQuantity:  item.Quantity,
				Unit:               item.Unit,
				StorageType:        storage,
				BatchNumber:        item.BatchNumber,
				ExpiryDate:         expiry,
				Status:             uc.classifier.Classify(expiry, now),
				ReceivedAt:         deliveryDate,
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			if err := batchRepo.Create(ctx, batch); err != nil {
				return err
			}
			itemsResp = append(itemsResp, dto.DeliveryItemResponse{
				ID:         noteItem.ID,
				ProductID:  product.ID,
				Quantity:   item.Quantity,
				Unit:       item.Unit,
				ExpiryDate: item.ExpiryDate,
				BatchID:    batch.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toDeliveryNoteResponse(note)
	resp.Items = itemsResp
	return resp, nil
}

// GetByID obtiene un albarán con sus líneas.
func (uc *DeliveryUseCase) GetByID(ctx context.Context, locationID, noteID string) (*dto.DeliveryNoteResponse, error) {
	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil || note.LocationID != locationID {
		return nil, nil
	}
	resp := toDeliveryNoteResponse(note)
	resp.Items = make([]dto.DeliveryItemResponse, 0, len(note.Items))
	for _, item := range note.Items {
		resp.Items = append(resp.Items, dto.DeliveryItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			ExpiryDate: formatDate(item.ExpiryDate),
		})
	}
	return resp, nil
}

// List lista los albaranes del local, más recientes primero.
func (uc *DeliveryUseCase) List(ctx context.Context, locationID string, page dto.PageRequest) (*dto.DeliveryListResponse, error) {
	page.DefaultPage()
	list, err := uc.noteRepo.ListByLocation(ctx, locationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryNoteResponse, 0, len(list))
	for i := range list {
		items = append(items, *toDeliveryNoteResponse(&list[i]))
	}
	return &dto.DeliveryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// resolveSupplier busca el proveedor por nombre en el negocio; si no existe lo crea.
func (uc *DeliveryUseCase) resolveSupplier(ctx context.Context, repo repository.SupplierRepository, businessID, name string, now time.Time) (string, error) {
	name = strings.TrimSpace(name)
	existing, err := repo.GetByName(ctx, businessID, name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	supplier := &entity.Supplier{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repo.Create(ctx, supplier); err != nil {
		return "", err
	}
	return supplier.ID, nil
}

// resolveProduct resuelve la línea a un producto del catálogo del negocio:
// por ID, por nombre, o creándolo si no existe.
func (uc *DeliveryUseCase) resolveProduct(ctx context.Context, repo repository.ProductRepository, businessID string, item dto.DeliveryItemRequest, now time.Time) (*entity.Product, error) {
	if item.ProductID != nil {
		product, err := repo.GetByID(ctx, *item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.BusinessID != businessID {
			return nil, domain.ErrNotFound
		}
		return product, nil
	}
	name := strings.TrimSpace(*item.ProductName)
	existing, err := repo.GetByName(ctx, businessID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	storage := entity.StorageAmbient
	if item.StorageType != nil {
		storage = entity.StorageType(*item.StorageType)
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		Name:        name,
		Unit:        item.Unit,
		StorageType: storage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func toDeliveryNoteResponse(n *entity.DeliveryNote) *dto.DeliveryNoteResponse {
	if n == nil {
		return nil
	}
	return &dto.DeliveryNoteResponse{
		ID:           n.ID,
		LocationID:   n.LocationID,
		SupplierID:   n.SupplierID,
		DeliveryDate: n.DeliveryDate.Format(dateLayout),
		Reference:    n.Reference,
		ImageURL:     n.ImageURL,
		Notes:        n.Notes,
		RegisteredBy: n.RegisteredBy,
		CreatedAt:    n.CreatedAt,
	}
}
