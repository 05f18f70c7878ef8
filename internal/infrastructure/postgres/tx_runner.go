package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/haccp-pro/internal/application/inventory"
	"github.com/tu-usuario/haccp-pro/internal/application/transfer"
	"github.com/tu-usuario/haccp-pro/internal/application/usecase"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// Ensure TxRunner implements the transactional ports of each use case.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ transfer.TxRunner = (*TxRunner)(nil)
var _ usecase.OnboardingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del registro de entradas
// (albarán + líneas + lotes) y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	noteRepo repository.DeliveryNoteRepository,
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	noteRepo := NewDeliveryNoteRepository(tx)
	batchRepo := NewBatchRepository(tx)
	productRepo := NewProductRepository(tx)
	supplierRepo := NewSupplierRepository(tx)

	if err := fn(noteRepo, batchRepo, productRepo, supplierRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransfer inicia una transacción con los repos del cierre de traspasos.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	batchRepo repository.BatchRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	transferRepo := NewTransferRepository(tx)
	batchRepo := NewBatchRepository(tx)

	if err := fn(transferRepo, batchRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOnboarding inicia una transacción con los repos del alta inicial
// (negocio + local + suscripción).
func (r *TxRunner) RunOnboarding(ctx context.Context, fn func(
	businessRepo repository.BusinessRepository,
	locationRepo repository.LocationRepository,
	subscriptionRepo repository.SubscriptionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	businessRepo := NewBusinessRepository(tx)
	locationRepo := NewLocationRepository(tx)
	subscriptionRepo := NewSubscriptionRepository(tx)

	if err := fn(businessRepo, locationRepo, subscriptionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
