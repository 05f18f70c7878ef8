package entity

import "time"

// UserRole rol de un usuario sobre un local.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// IsValid indica si el rol es uno de los valores conocidos.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Profile perfil de usuario de la aplicación.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LocationRole asignación de rol de un usuario en un local concreto.
type LocationRole struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	LocationID string    `json:"location_id"`
	Role       UserRole  `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}
