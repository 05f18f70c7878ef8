package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, location_id, product_id, supplier_id, delivery_note_item_id,
	quantity, remaining_quantity, unit, storage_type, batch_number,
	expiry_date, status, notes, received_at, created_at, updated_at`

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, location_id, product_id, supplier_id, delivery_note_item_id,
			quantity, remaining_quantity, unit, storage_type, batch_number,
			expiry_date, status, notes, received_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.LocationID, b.ProductID, b.SupplierID, b.DeliveryNoteItemID,
		b.Quantity, b.RemainingQuantity, b.Unit, b.StorageType, b.BatchNumber,
		b.ExpiryDate, b.Status, b.Notes, b.ReceivedAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT ... FOR UPDATE).
// Debe ejecutarse dentro de una transacción.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// ListByLocation lista los lotes del local ordenados por caducidad
// ascendente, con los lotes sin fecha primero.
func (r *BatchRepo) ListByLocation(ctx context.Context, locationID string, f repository.BatchFilter) ([]entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE location_id = $1`
	args := []any{locationID}
	if f.ProductID != nil {
		args = append(args, *f.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.OnlyWithStock {
		query += " AND remaining_quantity > 0"
	}
	query += " ORDER BY expiry_date ASC NULLS FIRST, created_at ASC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

// ListAlerts lista los lotes con stock en warning, critical o expired,
// los más urgentes primero.
func (r *BatchRepo) ListAlerts(ctx context.Context, locationID string) ([]entity.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches
		WHERE location_id = $1 AND remaining_quantity > 0 AND status <> 'ok'
		ORDER BY expiry_date ASC NULLS FIRST, created_at ASC`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

// Update actualiza cantidad restante, caducidad, estado y notas.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches
		SET remaining_quantity = $2, expiry_date = $3, status = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, b.ID, b.RemainingQuantity, b.ExpiryDate, b.Status, b.Notes, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// Delete elimina un lote.
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// CountByStatus agrupa los lotes con stock del local por estado.
func (r *BatchRepo) CountByStatus(ctx context.Context, locationID string) ([]repository.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM batches
		WHERE location_id = $1 AND remaining_quantity > 0
		GROUP BY status`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("count batches by status: %w", err)
	}
	defer rows.Close()
	return scanStatusCounts(rows)
}

// CountCreatedBetween cuenta los lotes dados de alta en [from, to).
func (r *BatchRepo) CountCreatedBetween(ctx context.Context, locationID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM batches
		WHERE location_id = $1 AND created_at >= $2 AND created_at < $3`
	var n int
	if err := r.q.QueryRow(ctx, query, locationID, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count batches: %w", err)
	}
	return n, nil
}

// CountAlertsBetween cuenta por estado los lotes creados en [from, to)
// que están en warning, critical o expired.
func (r *BatchRepo) CountAlertsBetween(ctx context.Context, locationID string, from, to time.Time) ([]repository.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM batches
		WHERE location_id = $1 AND created_at >= $2 AND created_at < $3 AND status <> 'ok'
		GROUP BY status`
	rows, err := r.q.Query(ctx, query, locationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}
	defer rows.Close()
	return scanStatusCounts(rows)
}

// RefreshStatuses recalcula en bloque el estado de los lotes del local a
// partir de la fecha de caducidad. Solo toca las filas cuyo estado cambia.
func (r *BatchRepo) RefreshStatuses(ctx context.Context, locationID string, now time.Time, criticalDays, warningDays int) (int64, error) {
	query := `
		WITH calc AS (
			SELECT id,
				CASE
					WHEN expiry_date IS NULL THEN 'ok'
					WHEN expiry_date < $2::date THEN 'expired'
					WHEN expiry_date <= $2::date + $3::int THEN 'critical'
					WHEN expiry_date <= $2::date + $4::int THEN 'warning'
					ELSE 'ok'
				END AS new_status
			FROM batches
			WHERE location_id = $1
		)
		UPDATE batches b
		SET status = c.new_status::batch_status, updated_at = now()
		FROM calc c
		WHERE b.id = c.id AND b.status::text <> c.new_status`
	tag, err := r.q.Exec(ctx, query, locationID, now, criticalDays, warningDays)
	if err != nil {
		return 0, fmt.Errorf("refresh batch statuses: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BatchRepo) scanOne(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.LocationID, &b.ProductID, &b.SupplierID, &b.DeliveryNoteItemID,
		&b.Quantity, &b.RemainingQuantity, &b.Unit, &b.StorageType, &b.BatchNumber,
		&b.ExpiryDate, &b.Status, &b.Notes, &b.ReceivedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

func scanBatches(rows pgx.Rows) ([]entity.Batch, error) {
	var out []entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(
			&b.ID, &b.LocationID, &b.ProductID, &b.SupplierID, &b.DeliveryNoteItemID,
			&b.Quantity, &b.RemainingQuantity, &b.Unit, &b.StorageType, &b.BatchNumber,
			&b.ExpiryDate, &b.Status, &b.Notes, &b.ReceivedAt, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanStatusCounts(rows pgx.Rows) ([]repository.StatusCount, error) {
	var out []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
