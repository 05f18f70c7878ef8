package repository

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// ProductRepository persistencia del catálogo de productos por negocio.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByName busca por nombre exacto (case-insensitive) dentro del negocio.
	GetByName(ctx context.Context, businessID, name string) (*entity.Product, error)
	ListByBusiness(ctx context.Context, businessID string) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
