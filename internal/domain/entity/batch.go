package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus estado de caducidad de un lote.
type BatchStatus string

const (
	BatchOK       BatchStatus = "ok"
	BatchWarning  BatchStatus = "warning"
	BatchCritical BatchStatus = "critical"
	BatchExpired  BatchStatus = "expired"
)

// IsValid indica si el estado es uno de los valores conocidos.
func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchOK, BatchWarning, BatchCritical, BatchExpired:
		return true
	}
	return false
}

// Batch es un lote de producto en inventario: cantidad recibida, cantidad
// restante y fecha de caducidad. El estado se recalcula a partir de la
// fecha de caducidad y los umbrales configurados.
type Batch struct {
	ID                 string          `json:"id"`
	LocationID         string          `json:"location_id"`
	ProductID          string          `json:"product_id"`
	SupplierID         *string         `json:"supplier_id,omitempty"`
	DeliveryNoteItemID *string         `json:"delivery_note_item_id,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`           // cantidad recibida
	RemainingQuantity  decimal.Decimal `json:"remaining_quantity"` // nunca negativa
	Unit               string          `json:"unit"`
	StorageType        StorageType     `json:"storage_type"`
	BatchNumber        *string         `json:"batch_number,omitempty"` // número de lote del fabricante
	ExpiryDate         *time.Time      `json:"expiry_date,omitempty"`
	Status             BatchStatus     `json:"status"`
	Notes              *string         `json:"notes,omitempty"`
	ReceivedAt         time.Time       `json:"received_at"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// HasStock indica si al lote le queda cantidad disponible.
func (b *Batch) HasStock() bool {
	return b.RemainingQuantity.IsPositive()
}
