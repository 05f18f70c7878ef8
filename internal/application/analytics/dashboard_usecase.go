// Package analytics resúmenes operativos para el panel del local.
package analytics

import (
	"context"
	"time"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/haccp"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// DashboardUseCase agrega los contadores del panel: lotes por estado,
// traspasos pendientes, entradas del mes y alertas abiertas.
type DashboardUseCase struct {
	batchRepo    repository.BatchRepository
	transferRepo repository.TransferRepository
	deliveryRepo repository.DeliveryNoteRepository
	classifier   *haccp.Classifier
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	batchRepo repository.BatchRepository,
	transferRepo repository.TransferRepository,
	deliveryRepo repository.DeliveryNoteRepository,
	classifier *haccp.Classifier,
) *DashboardUseCase {
	return &DashboardUseCase{
		batchRepo:    batchRepo,
		transferRepo: transferRepo,
		deliveryRepo: deliveryRepo,
		classifier:   classifier,
	}
}

// Get resume el estado operativo del local a fecha de hoy. Antes de contar
// se recalculan los estados almacenados, para que las alertas nacidas del
// paso del tiempo cuenten sin esperar al refresco diario.
func (uc *DashboardUseCase) Get(ctx context.Context, locationID string) (*dto.DashboardResponse, error) {
	now := time.Now()
	thresholds := uc.classifier.Thresholds()
	if _, err := uc.batchRepo.RefreshStatuses(ctx, locationID, now, thresholds.CriticalDays, thresholds.WarningDays); err != nil {
		return nil, err
	}

	counts, err := uc.batchRepo.CountByStatus(ctx, locationID)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int, len(counts))
	active := 0
	alerts := 0
	for _, c := range counts {
		byStatus[string(c.Status)] = c.Count
		active += c.Count
		if c.Status != entity.BatchOK {
			alerts += c.Count
		}
	}

	pendingStatus := entity.TransferPending
	pending, err := uc.transferRepo.ListByLocation(ctx, locationID, repository.TransferFilter{Status: &pendingStatus})
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	deliveries, err := uc.deliveryRepo.CountBetween(ctx, locationID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		LocationID:       locationID,
		BatchesByStatus:  byStatus,
		ActiveBatches:    active,
		PendingTransfers: len(pending),
		DeliveriesMonth:  deliveries,
		AlertCount:       alerts,
	}, nil
}
