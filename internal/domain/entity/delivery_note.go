package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryNote albarán de entrada de mercancía en un local.
type DeliveryNote struct {
	ID           string     `json:"id"`
	LocationID   string     `json:"location_id"`
	SupplierID   *string    `json:"supplier_id,omitempty"`
	DeliveryDate time.Time  `json:"delivery_date"`
	Reference    *string    `json:"reference,omitempty"`
	ImageURL     *string    `json:"image_url,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	RegisteredBy string     `json:"registered_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Items se puebla al cargar el albarán completo.
	Items []DeliveryNoteItem `json:"items,omitempty"`
}

// DeliveryNoteItem línea de albarán. Cada línea genera un lote.
type DeliveryNoteItem struct {
	ID             string          `json:"id"`
	DeliveryNoteID string          `json:"delivery_note_id"`
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
