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

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionColumns = `id, business_id, status, plan, trial_ends_at, created_at, updated_at`

// Create persiste una suscripción nueva.
func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, business_id, status, plan, trial_ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.BusinessID, s.Status, s.Plan, s.TrialEndsAt, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByBusiness obtiene la suscripción de un negocio.
func (r *SubscriptionRepo) GetByBusiness(ctx context.Context, businessID string) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE business_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, businessID))
}

// GetByUser obtiene la suscripción del negocio del usuario: como propietario
// o por rol en alguno de sus locales.
func (r *SubscriptionRepo) GetByUser(ctx context.Context, userID string) (*entity.Subscription, error) {
	query := `
		SELECT DISTINCT s.id, s.business_id, s.status, s.plan, s.trial_ends_at, s.created_at, s.updated_at
		FROM subscriptions s
		JOIN businesses b ON b.id = s.business_id
		LEFT JOIN locations l ON l.business_id = b.id
		LEFT JOIN user_roles ur ON ur.location_id = l.id AND ur.user_id = $1
		WHERE b.owner_id = $1 OR ur.user_id IS NOT NULL
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, userID))
}

// Update actualiza estado y plan.
func (r *SubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	query := `
		UPDATE subscriptions SET status = $2, plan = $3, trial_ends_at = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Status, s.Plan, s.TrialEndsAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) scanOne(row pgx.Row) (*entity.Subscription, error) {
	var s entity.Subscription
	err := row.Scan(&s.ID, &s.BusinessID, &s.Status, &s.Plan, &s.TrialEndsAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}
