package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, batch_id, product_id, from_location_id, to_location_id, quantity, status, notes,
	requested_by, processed_by, processed_at, completed_at, created_at, updated_at`

// Create persiste un traspaso nuevo.
func (r *TransferRepo) Create(ctx context.Context, t *entity.InternalTransfer) error {
	query := `
		INSERT INTO internal_transfers (id, batch_id, product_id, from_location_id, to_location_id, quantity,
			status, notes, requested_by, processed_by, processed_at, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.BatchID, t.ProductID, t.FromLocationID, t.ToLocationID, t.Quantity,
		t.Status, t.Notes, t.RequestedBy, t.ProcessedBy, t.ProcessedAt, t.CompletedAt,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traspaso por ID.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.InternalTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM internal_transfers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate obtiene el traspaso y bloquea la fila. Debe ejecutarse en transacción.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.InternalTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM internal_transfers WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// ListByLocation lista los traspasos que tocan el local, más recientes primero.
func (r *TransferRepo) ListByLocation(ctx context.Context, locationID string, f repository.TransferFilter) ([]entity.InternalTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM internal_transfers WHERE `
	args := []any{locationID}
	switch f.Direction {
	case "outgoing":
		query += "from_location_id = $1"
	case "incoming":
		query += "to_location_id = $1"
	default:
		query += "(from_location_id = $1 OR to_location_id = $1)"
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []entity.InternalTransfer
	for rows.Next() {
		var t entity.InternalTransfer
		if err := rows.Scan(
			&t.ID, &t.BatchID, &t.ProductID, &t.FromLocationID, &t.ToLocationID, &t.Quantity,
			&t.Status, &t.Notes, &t.RequestedBy, &t.ProcessedBy, &t.ProcessedAt, &t.CompletedAt,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update actualiza estado y marcas de procesado/completado.
func (r *TransferRepo) Update(ctx context.Context, t *entity.InternalTransfer) error {
	query := `
		UPDATE internal_transfers
		SET status = $2, processed_by = $3, processed_at = $4, completed_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, t.ID, t.Status, t.ProcessedBy, t.ProcessedAt, t.CompletedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

func (r *TransferRepo) scanOne(row pgx.Row) (*entity.InternalTransfer, error) {
	var t entity.InternalTransfer
	err := row.Scan(
		&t.ID, &t.BatchID, &t.ProductID, &t.FromLocationID, &t.ToLocationID, &t.Quantity,
		&t.Status, &t.Notes, &t.RequestedBy, &t.ProcessedBy, &t.ProcessedAt, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}
