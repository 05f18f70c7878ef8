package dto

import "time"

// CreateLocationRequest entrada para crear un local.
type CreateLocationRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Type    string  `json:"type" validate:"required"`
	Address *string `json:"address"`
}

// UpdateLocationRequest entrada para actualizar un local. IsActive a false
// retira el local de la operativa (no admite traspasos).
type UpdateLocationRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type     *string `json:"type"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}

// AssignRoleRequest asignación de rol de usuario en un local.
type AssignRoleRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=admin employee"`
}

// LocationResponse salida de un local.
type LocationResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Address    *string   `json:"address,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LocationListResponse lista de locales.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
}
