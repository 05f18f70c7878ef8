package entity

import "time"

// SubscriptionStatus estado de la suscripción de un negocio.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// AllowsAccess indica si la suscripción permite operar con la aplicación.
func (s SubscriptionStatus) AllowsAccess() bool {
	return s == SubscriptionActive || s == SubscriptionTrial
}

// Subscription suscripción de un negocio al servicio.
type Subscription struct {
	ID         string             `json:"id"`
	BusinessID string             `json:"business_id"`
	Status     SubscriptionStatus `json:"status"`
	Plan       string             `json:"plan"`
	TrialEndsAt *time.Time        `json:"trial_ends_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
