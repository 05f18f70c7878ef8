package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/domain"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// UseCase máquina de estados de traspasos internos:
// pending -> accepted | rejected; accepted -> completed.
//
// Al completar se descuenta la cantidad del lote origen sin bajar de cero.
// El alta en el inventario del local destino es un registro manual
// posterior (entrada normal), no lo hace este caso de uso.
type UseCase struct {
	transferRepo repository.TransferRepository
	batchRepo    repository.BatchRepository
	locationRepo repository.LocationRepository
	accessRepo   repository.AccessRepository
	txRunner     TxRunner
}

// NewUseCase construye el caso de uso de traspasos.
func NewUseCase(
	transferRepo repository.TransferRepository,
	batchRepo repository.BatchRepository,
	locationRepo repository.LocationRepository,
	accessRepo repository.AccessRepository,
	txRunner TxRunner,
) *UseCase {
	return &UseCase{
		transferRepo: transferRepo,
		batchRepo:    batchRepo,
		locationRepo: locationRepo,
		accessRepo:   accessRepo,
		txRunner:     txRunner,
	}
}

// Create solicita un traspaso de un lote hacia otro local. El solicitante
// debe tener acceso al local destino; origen y destino deben ser locales
// activos y distintos del mismo negocio, y la cantidad pedida no puede
// superar lo que queda en el lote.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.batchRepo.GetByID(ctx, in.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.LocationID == in.ToLocationID {
		return nil, domain.ErrInvalidInput
	}
	if !batch.HasStock() || in.Quantity.GreaterThan(batch.RemainingQuantity) {
		return nil, domain.ErrInsufficientStock
	}

	fromLoc, err := uc.locationRepo.GetByID(ctx, batch.LocationID)
	if err != nil {
		return nil, err
	}
	toLoc, err := uc.locationRepo.GetByID(ctx, in.ToLocationID)
	if err != nil {
		return nil, err
	}
	if fromLoc == nil || toLoc == nil {
		return nil, domain.ErrNotFound
	}
	if fromLoc.BusinessID != toLoc.BusinessID {
		return nil, domain.ErrForbidden
	}
	if !fromLoc.IsActive || !toLoc.IsActive {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.accessRepo.HasLocationAccess(ctx, userID, in.ToLocationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	transfer := &entity.InternalTransfer{
		ID:             uuid.New().String(),
		BatchID:        batch.ID,
		ProductID:      batch.ProductID,
		FromLocationID: batch.LocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Status:         entity.TransferPending,
		Notes:          in.Notes,
		RequestedBy:    userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.transferRepo.Create(ctx, transfer); err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// Accept acepta un traspaso pendiente. Solo responsables del local origen.
func (uc *UseCase) Accept(ctx context.Context, userID, transferID string) (*dto.TransferResponse, error) {
	return uc.process(ctx, userID, transferID, entity.TransferAccepted)
}

// Reject rechaza un traspaso pendiente. Solo responsables del local origen.
// El rechazo es terminal: el lote no se toca.
func (uc *UseCase) Reject(ctx context.Context, userID, transferID string) (*dto.TransferResponse, error) {
	return uc.process(ctx, userID, transferID, entity.TransferRejected)
}

func (uc *UseCase) process(ctx context.Context, userID, transferID string, next entity.TransferStatus) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.accessRepo.IsLocationManager(ctx, userID, transfer.FromLocationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if !transfer.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	transfer.Status = next
	transfer.ProcessedBy = &userID
	transfer.ProcessedAt = &now
	transfer.UpdatedAt = now
	if err := uc.transferRepo.Update(ctx, transfer); err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// Complete cierra un traspaso aceptado: descuenta la cantidad del lote
// origen (sin bajar de cero) y marca el traspaso como completado. Todo
// dentro de una transacción con las filas bloqueadas.
func (uc *UseCase) Complete(ctx context.Context, userID, transferID string) (*dto.TransferResponse, error) {
	pre, err := uc.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if pre == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.accessRepo.IsLocationManager(ctx, userID, pre.FromLocationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	var result *entity.InternalTransfer
	err = uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		batchRepo repository.BatchRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.Status.CanTransitionTo(entity.TransferCompleted) {
			return domain.ErrInvalidTransition
		}
		batch, err := batchRepo.GetForUpdate(ctx, transfer.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}

		remaining := batch.RemainingQuantity.Sub(transfer.Quantity)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		now := time.Now()
		batch.RemainingQuantity = remaining
		batch.UpdatedAt = now
		if err := batchRepo.Update(ctx, batch); err != nil {
			return err
		}

		transfer.Status = entity.TransferCompleted
		transfer.CompletedAt = &now
		transfer.UpdatedAt = now
		if err := transferRepo.Update(ctx, transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(result), nil
}

// List lista los traspasos que tocan el local, con filtro de estado y dirección.
func (uc *UseCase) List(ctx context.Context, locationID string, in dto.TransferListRequest) (*dto.TransferListResponse, error) {
	filter := repository.TransferFilter{Direction: in.Direction}
	if in.Status != nil {
		status := entity.TransferStatus(*in.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		filter.Status = &status
	}
	list, err := uc.transferRepo.ListByLocation(ctx, locationID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for i := range list {
		items = append(items, *toTransferResponse(&list[i]))
	}
	return &dto.TransferListResponse{Items: items}, nil
}

// ListCandidates lista lotes con stock de otros locales del negocio, para
// solicitar traspasos (el "mercado interno").
func (uc *UseCase) ListCandidates(ctx context.Context, userID, locationID string) (*dto.BatchListResponse, error) {
	loc, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	siblings, err := uc.locationRepo.ListByBusiness(ctx, loc.BusinessID)
	if err != nil {
		return nil, err
	}
	var items []dto.BatchResponse
	for i := range siblings {
		if siblings[i].ID == locationID {
			continue
		}
		batches, err := uc.batchRepo.ListByLocation(ctx, siblings[i].ID, repository.BatchFilter{OnlyWithStock: true})
		if err != nil {
			return nil, err
		}
		for j := range batches {
			b := &batches[j]
			items = append(items, dto.BatchResponse{
				ID:                b.ID,
				LocationID:        b.LocationID,
				ProductID:         b.ProductID,
				Quantity:          b.Quantity,
				RemainingQuantity: b.RemainingQuantity,
				Unit:              b.Unit,
				StorageType:       string(b.StorageType),
				BatchNumber:       b.BatchNumber,
				Status:            string(b.Status),
				ReceivedAt:        b.ReceivedAt,
				CreatedAt:         b.CreatedAt,
			})
		}
	}
	return &dto.BatchListResponse{Items: items}, nil
}

func toTransferResponse(t *entity.InternalTransfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	return &dto.TransferResponse{
		ID:             t.ID,
		BatchID:        t.BatchID,
		ProductID:      t.ProductID,
		FromLocationID: t.FromLocationID,
		ToLocationID:   t.ToLocationID,
		Quantity:       t.Quantity,
		Status:         string(t.Status),
		Notes:          t.Notes,
		RequestedBy:    t.RequestedBy,
		ProcessedBy:    t.ProcessedBy,
		ProcessedAt:    t.ProcessedAt,
		CompletedAt:    t.CompletedAt,
		CreatedAt:      t.CreatedAt,
	}
}
