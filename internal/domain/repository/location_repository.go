package repository

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// LocationRepository persistencia de locales.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	ListByBusiness(ctx context.Context, businessID string) ([]entity.Location, error)
	// ListAccessible devuelve los locales a los que el usuario puede acceder:
	// los de negocios de su propiedad más los que tiene rol asignado.
	ListAccessible(ctx context.Context, userID string) ([]entity.Location, error)
	Update(ctx context.Context, l *entity.Location) error
	Delete(ctx context.Context, id string) error
}
