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

var _ repository.DeliveryNoteRepository = (*DeliveryNoteRepo)(nil)

// DeliveryNoteRepo implementación del puerto DeliveryNoteRepository sobre PostgreSQL.
type DeliveryNoteRepo struct {
	q Querier
}

// NewDeliveryNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryNoteRepository(q Querier) *DeliveryNoteRepo {
	return &DeliveryNoteRepo{q: q}
}

const deliveryNoteColumns = `id, location_id, supplier_id, delivery_date, reference, image_url, notes,
	registered_by, created_at, updated_at`

// Create persiste la cabecera de un albarán.
func (r *DeliveryNoteRepo) Create(ctx context.Context, n *entity.DeliveryNote) error {
	query := `
		INSERT INTO delivery_notes (id, location_id, supplier_id, delivery_date, reference, image_url,
			notes, registered_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.LocationID, n.SupplierID, n.DeliveryDate, n.Reference, n.ImageURL,
		n.Notes, n.RegisteredBy, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery note: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de albarán.
func (r *DeliveryNoteRepo) CreateItem(ctx context.Context, item *entity.DeliveryNoteItem) error {
	query := `
		INSERT INTO delivery_note_items (id, delivery_note_id, product_id, quantity, unit, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.DeliveryNoteID, item.ProductID, item.Quantity, item.Unit, item.ExpiryDate, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery note item: %w", err)
	}
	return nil
}

// GetByID obtiene un albarán con sus líneas.
func (r *DeliveryNoteRepo) GetByID(ctx context.Context, id string) (*entity.DeliveryNote, error) {
	query := `SELECT ` + deliveryNoteColumns + ` FROM delivery_notes WHERE id = $1`
	var n entity.DeliveryNote
	err := r.q.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.LocationID, &n.SupplierID, &n.DeliveryDate, &n.Reference, &n.ImageURL,
		&n.Notes, &n.RegisteredBy, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery note: %w", err)
	}

	itemsQuery := `
		SELECT id, delivery_note_id, product_id, quantity, unit, expiry_date, created_at
		FROM delivery_note_items WHERE delivery_note_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list delivery note items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.DeliveryNoteItem
		if err := rows.Scan(&item.ID, &item.DeliveryNoteID, &item.ProductID, &item.Quantity, &item.Unit, &item.ExpiryDate, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery note item: %w", err)
		}
		n.Items = append(n.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByLocation lista los albaranes del local, más recientes primero.
func (r *DeliveryNoteRepo) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]entity.DeliveryNote, error) {
	query := `SELECT ` + deliveryNoteColumns + `
		FROM delivery_notes WHERE location_id = $1
		ORDER BY delivery_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	defer rows.Close()

	var out []entity.DeliveryNote
	for rows.Next() {
		var n entity.DeliveryNote
		if err := rows.Scan(
			&n.ID, &n.LocationID, &n.SupplierID, &n.DeliveryDate, &n.Reference, &n.ImageURL,
			&n.Notes, &n.RegisteredBy, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan delivery note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountBetween cuenta los albaranes del local con fecha de entrega en [from, to).
func (r *DeliveryNoteRepo) CountBetween(ctx context.Context, locationID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM delivery_notes
		WHERE location_id = $1 AND delivery_date >= $2 AND delivery_date < $3`
	var n int
	if err := r.q.QueryRow(ctx, query, locationID, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count delivery notes: %w", err)
	}
	return n, nil
}
