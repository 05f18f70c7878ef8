package entity

import "time"

// LocationType tipo de local.
type LocationType string

const (
	LocationRestaurant LocationType = "restaurant"
	LocationBar        LocationType = "bar"
	LocationCafe       LocationType = "cafe"
	LocationCatering   LocationType = "catering"
	LocationStore      LocationType = "store"
	LocationOther      LocationType = "other"
)

// IsValid indica si el tipo de local es uno de los valores conocidos.
func (t LocationType) IsValid() bool {
	switch t {
	case LocationRestaurant, LocationBar, LocationCafe, LocationCatering, LocationStore, LocationOther:
		return true
	}
	return false
}

// Location representa un local físico de un negocio (restaurante, bar, almacén...).
type Location struct {
	ID         string       `json:"id"`
	BusinessID string       `json:"business_id"`
	Name       string       `json:"name"`
	Type       LocationType `json:"type"`
	Address    *string      `json:"address,omitempty"`
	IsActive   bool         `json:"is_active"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
