package repository

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// BusinessRepository persistencia de negocios.
type BusinessRepository interface {
	Create(ctx context.Context, b *entity.Business) error
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	GetByOwner(ctx context.Context, ownerID string) (*entity.Business, error)
	Update(ctx context.Context, b *entity.Business) error
}
