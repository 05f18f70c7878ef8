package repository

import (
	"context"

	"github.com/tu-usuario/haccp-pro/internal/domain/entity"
)

// AccessRepository resuelve el control de acceso multi-tenant.
//
// Un usuario accede a un local si es propietario del negocio al que
// pertenece o si tiene un rol asignado en ese local.
type AccessRepository interface {
	HasLocationAccess(ctx context.Context, userID, locationID string) (bool, error)
	// IsLocationManager indica si el usuario es propietario del negocio o
	// tiene rol admin en el local.
	IsLocationManager(ctx context.Context, userID, locationID string) (bool, error)
	IsBusinessOwner(ctx context.Context, userID, businessID string) (bool, error)
	AssignRole(ctx context.Context, lr *entity.LocationRole) error
	RemoveRole(ctx context.Context, userID, locationID string) error
	ListRolesByLocation(ctx context.Context, locationID string) ([]entity.LocationRole, error)
}
