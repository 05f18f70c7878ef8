package repository

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// HaccpReportRepository registro de informes HACCP generados.
type HaccpReportRepository interface {
	Create(ctx context.Context, r *entity.HaccpReport) error
	ListByLocation(ctx context.Context, locationID string) ([]entity.HaccpReport, error)
}
