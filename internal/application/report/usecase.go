package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/haccp-pro/internal/application/dto"
	"github.com/tu-usuario/haccp-pro/internal/domain"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// UseCase genera el informe HACCP mensual: agrega entradas, lotes y alertas
// del periodo, produce el PDF y registra la generación.
type UseCase struct {
	locationRepo repository.LocationRepository
	deliveryRepo repository.DeliveryNoteRepository
	batchRepo    repository.BatchRepository
	reportRepo   repository.HaccpReportRepository
	generator    Generator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	locationRepo repository.LocationRepository,
	deliveryRepo repository.DeliveryNoteRepository,
	batchRepo repository.BatchRepository,
	reportRepo repository.HaccpReportRepository,
	generator Generator,
) *UseCase {
	return &UseCase{
		locationRepo: locationRepo,
		deliveryRepo: deliveryRepo,
		batchRepo:    batchRepo,
		reportRepo:   reportRepo,
		generator:    generator,
	}
}

// Result informe generado: PDF más sus metadatos.
type Result struct {
	FileName string
	PDF      []byte
	Meta     dto.HaccpReportResponse
}

// GenerateMonthly genera el informe del mes indicado. Meses futuros no son
// válidos. El PDF se devuelve al llamador; en BD solo queda el registro de
// la generación.
func (uc *UseCase) GenerateMonthly(ctx context.Context, locationID, userID string, in dto.HaccpReportRequest) (*Result, error) {
	if in.Month < 1 || in.Month > 12 || in.Year < 2000 || in.Year > 2100 {
		return nil, domain.ErrInvalidInput
	}
	from := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
	if from.After(time.Now()) {
		return nil, domain.ErrInvalidInput
	}
	to := from.AddDate(0, 1, 0)

	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	deliveries, err := uc.deliveryRepo.CountBetween(ctx, locationID, from, to)
	if err != nil {
		return nil, err
	}
	batchesCreated, err := uc.batchRepo.CountCreatedBetween(ctx, locationID, from, to)
	if err != nil {
		return nil, err
	}
	alertCounts, err := uc.batchRepo.CountAlertsBetween(ctx, locationID, from, to)
	if err != nil {
		return nil, err
	}

	data := Data{
		LocationName:   location.Name,
		Year:           in.Year,
		Month:          in.Month,
		Deliveries:     deliveries,
		BatchesCreated: batchesCreated,
		SignedBy:       in.SignedBy,
		GeneratedBy:    userID,
	}
	for _, c := range alertCounts {
		switch c.Status {
		case entity.BatchWarning:
			data.WarningCount = c.Count
		case entity.BatchCritical:
			data.CriticalCount = c.Count
		case entity.BatchExpired:
			data.ExpiredCount = c.Count
		}
	}

	pdf, err := uc.generator.Generate(data)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entity.HaccpReport{
		ID:          uuid.New().String(),
		LocationID:  locationID,
		Year:        in.Year,
		Month:       in.Month,
		FileName:    fmt.Sprintf("HACCP-%04d-%02d.pdf", in.Year, in.Month),
		GeneratedBy: userID,
		GeneratedAt: now,
	}
	if in.SignedBy != nil && *in.SignedBy != "" {
		record.SignedBy = in.SignedBy
		record.SignedAt = &now
	}
	if err := uc.reportRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &Result{
		FileName: record.FileName,
		PDF:      pdf,
		Meta: dto.HaccpReportResponse{
			ID:          record.ID,
			LocationID:  record.LocationID,
			Year:        record.Year,
			Month:       record.Month,
			FileName:    record.FileName,
			GeneratedBy: record.GeneratedBy,
			GeneratedAt: record.GeneratedAt,
			SignedBy:    record.SignedBy,
			SignedAt:    record.SignedAt,
		},
	}, nil
}

// ListHistory histórico de informes generados del local.
func (uc *UseCase) ListHistory(ctx context.Context, locationID string) (*dto.HaccpReportListResponse, error) {
	list, err := uc.reportRepo.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HaccpReportResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.HaccpReportResponse{
			ID:          r.ID,
			LocationID:  r.LocationID,
			Year:        r.Year,
			Month:       r.Month,
			FileName:    r.FileName,
			GeneratedBy: r.GeneratedBy,
			GeneratedAt: r.GeneratedAt,
			SignedBy:    r.SignedBy,
			SignedAt:    r.SignedAt,
		})
	}
	return &dto.HaccpReportListResponse{Items: items}, nil
}
