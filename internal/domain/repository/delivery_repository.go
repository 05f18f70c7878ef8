package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// DeliveryNoteRepository persistencia de albaranes y sus líneas.
type DeliveryNoteRepository interface {
	Create(ctx context.Context, n *entity.DeliveryNote) error
	CreateItem(ctx context.Context, item *entity.DeliveryNoteItem) error
	GetByID(ctx context.Context, id string) (*entity.DeliveryNote, error)
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]entity.DeliveryNote, error)
	// CountBetween cuenta los albaranes del local con fecha de entrega en [from, to).
	CountBetween(ctx context.Context, locationID string, from, to time.Time) (int, error)
}
