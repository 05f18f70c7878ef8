package dto

import "time"

// OnboardingRequest alta inicial: negocio + primer local. La suscripción
// arranca en periodo de prueba.
type OnboardingRequest struct {
	BusinessName string  `json:"business_name" validate:"required,min=1,max=200"`
	LocationName string  `json:"location_name" validate:"required,min=1,max=200"`
	LocationType string  `json:"location_type" validate:"required"`
	Address      *string `json:"address"`
}

// OnboardingResponse resultado del alta inicial.
type OnboardingResponse struct {
	Business     BusinessResponse     `json:"business"`
	Location     LocationResponse     `json:"location"`
	Subscription SubscriptionResponse `json:"subscription"`
}

// BusinessResponse salida de un negocio.
type BusinessResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriptionResponse salida de una suscripción.
type SubscriptionResponse struct {
	ID          string     `json:"id"`
	BusinessID  string     `json:"business_id"`
	Status      string     `json:"status"`
	Plan        string     `json:"plan"`
	TrialEndsAt *time.Time `json:"trial_ends_at,omitempty"`
}
