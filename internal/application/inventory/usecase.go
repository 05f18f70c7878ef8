package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/domain"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/haccp"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// UseCase operaciones sobre lotes: alta manual, listados, alertas,
// consumo, corrección de caducidad y acciones correctivas.
type UseCase struct {
	batchRepo    repository.BatchRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	classifier   *haccp.Classifier
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(batchRepo repository.BatchRepository, productRepo repository.ProductRepository, locationRepo repository.LocationRepository, classifier *haccp.Classifier) *UseCase {
	return &UseCase{batchRepo: batchRepo, productRepo: productRepo, locationRepo: locationRepo, classifier: classifier}
}

// CreateBatch alta manual de un lote (entrada sin albarán). El producto
// debe ser del catálogo del negocio del local; unidad y conservación se
// heredan del producto. El estado se clasifica en el momento del alta.
func (uc *UseCase) CreateBatch(ctx context.Context, locationID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != location.BusinessID {
		return nil, domain.ErrNotFound
	}
	expiry, err := parseDate(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	batch := &entity.Batch{
		ID:                uuid.New().String(),
		LocationID:        locationID,
		ProductID:         in.ProductID,
		SupplierID:        in.SupplierID,
		Quantity:          in.Quantity,
		RemainingQuantity: in.Quantity,
		Unit:              product.Unit,
		StorageType:       product.StorageType,
		BatchNumber:       in.BatchNumber,
		ExpiryDate:        expiry,
		Status:            uc.classifier.Classify(expiry, now),
		Notes:             in.Notes,
		ReceivedAt:        now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	return uc.toBatchResponse(batch, product), nil
}

// GetBatch obtiene un lote del local.
func (uc *UseCase) GetBatch(ctx context.Context, locationID, batchID string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.LocationID != locationID {
		return nil, nil
	}
	return uc.toBatchResponse(batch, nil), nil
}

// ListBatches lista los lotes del local ordenados por caducidad ascendente
// (sin fecha primero).
func (uc *UseCase) ListBatches(ctx context.Context, locationID string, in dto.BatchListRequest) (*dto.BatchListResponse, error) {
	filter := repository.BatchFilter{
		ProductID:     in.ProductID,
		OnlyWithStock: in.WithStock,
	}
	if in.Status != nil {
		status := entity.BatchStatus(*in.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		filter.Status = &status
	}
	list, err := uc.batchRepo.ListByLocation(ctx, locationID, filter)
	if err != nil {
		return nil, err
	}
	return uc.toBatchListResponse(list), nil
}

// ListAlerts lista los lotes con stock en warning, critical o expired.
// Los estados almacenados se recalculan antes de leer: una alerta nacida
// del paso del tiempo aparece aunque nadie haya tocado el lote.
func (uc *UseCase) ListAlerts(ctx context.Context, locationID string) (*dto.BatchListResponse, error) {
	if err := uc.refresh(ctx, locationID); err != nil {
		return nil, err
	}
	list, err := uc.batchRepo.ListAlerts(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return uc.toBatchListResponse(list), nil
}

// Summary recuento de lotes con stock por estado, con los estados
// recalculados a fecha de hoy.
func (uc *UseCase) Summary(ctx context.Context, locationID string) (*dto.InventorySummaryResponse, error) {
	if err := uc.refresh(ctx, locationID); err != nil {
		return nil, err
	}
	counts, err := uc.batchRepo.CountByStatus(ctx, locationID)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int, len(counts))
	total := 0
	for _, c := range counts {
		byStatus[string(c.Status)] = c.Count
		total += c.Count
	}
	return &dto.InventorySummaryResponse{
		LocationID: locationID,
		ByStatus:   byStatus,
		Total:      total,
	}, nil
}

// Consume descuenta cantidad de un lote. La cantidad restante nunca baja
// de cero: consumir más de lo disponible deja el lote a cero.
func (uc *UseCase) Consume(ctx context.Context, locationID, batchID string, in dto.ConsumeBatchRequest) (*dto.BatchResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.LocationID != locationID {
		return nil, domain.ErrNotFound
	}
	if !batch.HasStock() {
		return nil, domain.ErrInsufficientStock
	}
	remaining := batch.RemainingQuantity.Sub(in.Quantity)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	batch.RemainingQuantity = remaining
	batch.UpdatedAt = time.Now()
	uc.classifier.Apply(batch, batch.UpdatedAt)
	if err := uc.batchRepo.Update(ctx, batch); err != nil {
		return nil, err
	}
	return uc.toBatchResponse(batch, nil), nil
}

// UpdateExpiry corrige la fecha de caducidad y reclasifica el lote.
// ExpiryDate nulo elimina la fecha (el lote pasa a ok).
func (uc *UseCase) UpdateExpiry(ctx context.Context, locationID, batchID string, in dto.UpdateBatchExpiryRequest) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.LocationID != locationID {
		return nil, domain.ErrNotFound
	}
	expiry, err := parseDate(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	batch.ExpiryDate = expiry
	batch.UpdatedAt = time.Now()
	uc.classifier.Apply(batch, batch.UpdatedAt)
	if err := uc.batchRepo.Update(ctx, batch); err != nil {
		return nil, err
	}
	return uc.toBatchResponse(batch, nil), nil
}

// Acknowledge registra una acción correctiva sobre un lote en alerta
// (retirada, consumo prioritario...). La nota queda en el lote y aparece
// en el informe HACCP del periodo.
func (uc *UseCase) Acknowledge(ctx context.Context, locationID, batchID, userID string, in dto.AcknowledgeBatchRequest) (*dto.BatchResponse, error) {
	if in.Note == "" {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.LocationID != locationID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	entry := fmt.Sprintf("[%s] %s", now.Format("2006-01-02 15:04"), in.Note)
	if batch.Notes != nil && *batch.Notes != "" {
		entry = *batch.Notes + "\n" + entry
	}
	batch.Notes = &entry
	batch.UpdatedAt = now
	if err := uc.batchRepo.Update(ctx, batch); err != nil {
		return nil, err
	}
	return uc.toBatchResponse(batch, nil), nil
}

// RefreshStatuses recalcula en bloque el estado de todos los lotes del
// local. Pensado para ejecutarse al abrir el día o desde un cron externo.
func (uc *UseCase) RefreshStatuses(ctx context.Context, locationID string) (int64, error) {
	t := uc.classifier.Thresholds()
	return uc.batchRepo.RefreshStatuses(ctx, locationID, time.Now(), t.CriticalDays, t.WarningDays)
}

func (uc *UseCase) refresh(ctx context.Context, locationID string) error {
	_, err := uc.RefreshStatuses(ctx, locationID)
	return err
}

func (uc *UseCase) toBatchResponse(b *entity.Batch, p *entity.Product) *dto.BatchResponse {
	resp := &dto.BatchResponse{
		ID:                b.ID,
		LocationID:        b.LocationID,
		ProductID:         b.ProductID,
		SupplierID:        b.SupplierID,
		Quantity:          b.Quantity,
		RemainingQuantity: b.RemainingQuantity,
		Unit:              b.Unit,
		StorageType:       string(b.StorageType),
		BatchNumber:       b.BatchNumber,
		ExpiryDate:        formatDate(b.ExpiryDate),
		Status:            string(b.Status),
		Notes:             b.Notes,
		ReceivedAt:        b.ReceivedAt,
		CreatedAt:         b.CreatedAt,
	}
	if b.ExpiryDate != nil {
		days := haccp.DaysUntil(time.Now(), *b.ExpiryDate)
		resp.DaysToExpiry = &days
	}
	if p != nil {
		resp.ProductName = p.Name
	}
	return resp
}

func (uc *UseCase) toBatchListResponse(list []entity.Batch) *dto.BatchListResponse {
	items := make([]dto.BatchResponse, 0, len(list))
	for i := range list {
		items = append(items, *uc.toBatchResponse(&list[i], nil))
	}
	return &dto.BatchListResponse{Items: items}
}
