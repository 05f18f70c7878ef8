package repository

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// SupplierRepository persistencia de proveedores por negocio.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	// GetByName busca por nombre exacto (case-insensitive) dentro del negocio.
	GetByName(ctx context.Context, businessID, name string) (*entity.Supplier, error)
	ListByBusiness(ctx context.Context, businessID string) ([]entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	Delete(ctx context.Context, id string) error
}
