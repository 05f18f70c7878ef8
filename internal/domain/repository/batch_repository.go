package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// BatchFilter criterios de listado de lotes.
type BatchFilter struct {
	ProductID *string
	Status    *entity.BatchStatus
	// OnlyWithStock limita a lotes con cantidad restante positiva.
	OnlyWithStock bool
}

// StatusCount recuento de lotes por estado.
type StatusCount struct {
	Status entity.BatchStatus
	Count  int
}

// BatchRepository persistencia de lotes.
//
// Los listados se ordenan por fecha de caducidad ascendente con los lotes
// sin fecha primero (NULLS FIRST), que es el orden de revisión en cocina.
type BatchRepository interface {
	Create(ctx context.Context, b *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// GetForUpdate bloquea la fila del lote (SELECT ... FOR UPDATE).
	// Debe ejecutarse dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Batch, error)
	ListByLocation(ctx context.Context, locationID string, f BatchFilter) ([]entity.Batch, error)
	// ListAlerts devuelve los lotes con stock en estado warning, critical o expired.
	ListAlerts(ctx context.Context, locationID string) ([]entity.Batch, error)
	Update(ctx context.Context, b *entity.Batch) error
	Delete(ctx context.Context, id string) error
	// CountByStatus agrupa los lotes con stock del local por estado.
	CountByStatus(ctx context.Context, locationID string) ([]StatusCount, error)
	// CountCreatedBetween cuenta los lotes dados de alta en el intervalo [from, to).
	CountCreatedBetween(ctx context.Context, locationID string, from, to time.Time) (int, error)
	// CountAlertsBetween cuenta por estado los lotes creados en el intervalo
	// [from, to) que terminaron en warning, critical o expired.
	CountAlertsBetween(ctx context.Context, locationID string, from, to time.Time) ([]StatusCount, error)
	// RefreshStatuses recalcula en bloque el estado de los lotes del local a
	// partir de la fecha de caducidad y los umbrales. Devuelve filas afectadas.
	RefreshStatuses(ctx context.Context, locationID string, now time.Time, criticalDays, warningDays int) (int64, error)
}
