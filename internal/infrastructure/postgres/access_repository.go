package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/haccp-pro/internal/domain"
	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

var _ repository.AccessRepository = (*AccessRepo)(nil)

// AccessRepo resuelve el control de acceso multi-tenant sobre PostgreSQL.
type AccessRepo struct {
	q Querier
}

// NewAccessRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccessRepository(q Querier) *AccessRepo {
	return &AccessRepo{q: q}
}

// HasLocationAccess indica si el usuario es propietario del negocio del
// local o tiene rol asignado en el local.
func (r *AccessRepo) HasLocationAccess(ctx context.Context, userID, locationID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM locations l
			JOIN businesses b ON b.id = l.business_id
			WHERE l.id = $2 AND b.owner_id = $1
		) OR EXISTS (
			SELECT 1 FROM user_roles ur
			WHERE ur.user_id = $1 AND ur.location_id = $2
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, userID, locationID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check location access: %w", err)
	}
	return ok, nil
}

// IsLocationManager indica si el usuario es propietario del negocio o
// tiene rol admin en el local.
func (r *AccessRepo) IsLocationManager(ctx context.Context, userID, locationID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM locations l
			JOIN businesses b ON b.id = l.business_id
			WHERE l.id = $2 AND b.owner_id = $1
		) OR EXISTS (
			SELECT 1 FROM user_roles ur
			WHERE ur.user_id = $1 AND ur.location_id = $2 AND ur.role = 'admin'
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, userID, locationID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check location manager: %w", err)
	}
	return ok, nil
}

// IsBusinessOwner indica si el usuario es propietario del negocio.
func (r *AccessRepo) IsBusinessOwner(ctx context.Context, userID, businessID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM businesses WHERE id = $2 AND owner_id = $1)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, userID, businessID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check business owner: %w", err)
	}
	return ok, nil
}

// AssignRole asigna (o reemplaza) el rol de un usuario en un local.
func (r *AccessRepo) AssignRole(ctx context.Context, lr *entity.LocationRole) error {
	query := `
		INSERT INTO user_roles (id, user_id, location_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, location_id) DO UPDATE SET role = EXCLUDED.role`
	_, err := r.q.Exec(ctx, query, lr.ID, lr.UserID, lr.LocationID, lr.Role, lr.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// RemoveRole retira el rol de un usuario en un local.
func (r *AccessRepo) RemoveRole(ctx context.Context, userID, locationID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND location_id = $2`, userID, locationID)
	if err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}

// ListRolesByLocation lista las asignaciones de rol del local.
func (r *AccessRepo) ListRolesByLocation(ctx context.Context, locationID string) ([]entity.LocationRole, error) {
	query := `
		SELECT id, user_id, location_id, role, created_at
		FROM user_roles WHERE location_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var out []entity.LocationRole
	for rows.Next() {
		var lr entity.LocationRole
		if err := rows.Scan(&lr.ID, &lr.UserID, &lr.LocationID, &lr.Role, &lr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}
