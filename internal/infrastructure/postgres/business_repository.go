package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/haccp-pro/internal/domain"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persiste un negocio nuevo.
func (r *BusinessRepo) Create(ctx context.Context, b *entity.Business) error {
	query := `
		INSERT INTO businesses (id, name, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, b.ID, b.Name, b.OwnerID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM businesses WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByOwner obtiene el negocio de un propietario.
func (r *BusinessRepo) GetByOwner(ctx context.Context, ownerID string) (*entity.Business, error) {
	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM businesses WHERE owner_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, ownerID))
}

// Update actualiza el nombre del negocio.
func (r *BusinessRepo) Update(ctx context.Context, b *entity.Business) error {
	query := `UPDATE businesses SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, b.ID, b.Name, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

func (r *BusinessRepo) scanOne(row pgx.Row) (*entity.Business, error) {
	var b entity.Business
	err := row.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}
