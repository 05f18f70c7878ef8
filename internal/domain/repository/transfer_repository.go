package repository

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// TransferFilter criterios de listado de traspasos.
type TransferFilter struct {
	Status *entity.TransferStatus
	// Direction filtra por local origen ("outgoing"), destino ("incoming") o ambos (vacío).
	Direction string
}

// TransferRepository persistencia de traspasos internos.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.InternalTransfer) error
	GetByID(ctx context.Context, id string) (*entity.InternalTransfer, error)
	// GetForUpdate bloquea la fila del traspaso. Debe ejecutarse en transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InternalTransfer, error)
	ListByLocation(ctx context.Context, locationID string, f TransferFilter) ([]entity.InternalTransfer, error)
	Update(ctx context.Context, t *entity.InternalTransfer) error
}
