// Package transfer traspasos internos de lotes entre locales de un negocio.
package transfer

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// TxRunner ejecuta el cierre de un traspaso dentro de una transacción,
// pasando repositorios atados a esa tx. El cierre bloquea la fila del
// traspaso y la del lote para serializar completados concurrentes.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		batchRepo repository.BatchRepository,
	) error) error
}
