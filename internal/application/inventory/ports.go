// Package inventory motor de inventario: lotes, alertas de caducidad y
// registro de entradas (albaranes).
package inventory

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del registro de entradas:
// albarán, líneas y lotes se persisten juntos o no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		noteRepo repository.DeliveryNoteRepository,
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
