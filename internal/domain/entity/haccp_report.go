package entity

import "time"

// HaccpReport registro de un informe HACCP mensual generado para un local.
// SignedBy/SignedAt quedan informados cuando el informe se generó firmado.
type HaccpReport struct {
	ID          string     `json:"id"`
	LocationID  string     `json:"location_id"`
	Year        int        `json:"year"`
	Month       int        `json:"month"` // 1-12
	FileName    string     `json:"file_name"`
	GeneratedBy string     `json:"generated_by"`
	GeneratedAt time.Time  `json:"generated_at"`
	SignedBy    *string    `json:"signed_by,omitempty"`
	SignedAt    *time.Time `json:"signed_at,omitempty"`
}
