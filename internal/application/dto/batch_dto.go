package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest alta manual de un lote (sin albarán).
type CreateBatchRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	SupplierID  *string         `json:"supplier_id"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	BatchNumber *string         `json:"batch_number" validate:"omitempty,max=100"`
	ExpiryDate  *string         `json:"expiry_date"` // YYYY-MM-DD
	Notes       *string         `json:"notes"`
}

// UpdateBatchExpiryRequest corrección de fecha de caducidad.
// Con ExpiryDate nulo se elimina la fecha (producto no perecedero).
type UpdateBatchExpiryRequest struct {
	ExpiryDate *string `json:"expiry_date"` // YYYY-MM-DD
}

// ConsumeBatchRequest consumo de cantidad de un lote.
type ConsumeBatchRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// AcknowledgeBatchRequest registro de acción correctiva sobre una alerta.
type AcknowledgeBatchRequest struct {
	Note string `json:"note" validate:"required,min=1,max=500"`
}

// BatchListRequest filtros de listado de lotes.
type BatchListRequest struct {
	ProductID *string `query:"product_id"`
	Status    *string `query:"status"`
	WithStock bool    `query:"with_stock"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID                string          `json:"id"`
	LocationID        string          `json:"location_id"`
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name,omitempty"`
	SupplierID        *string         `json:"supplier_id,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	Unit              string          `json:"unit,omitempty"`
	StorageType       string          `json:"storage_type,omitempty"`
	BatchNumber       *string         `json:"batch_number,omitempty"`
	ExpiryDate        *string         `json:"expiry_date,omitempty"` // YYYY-MM-DD
	DaysToExpiry      *int            `json:"days_to_expiry,omitempty"`
	Status            string          `json:"status"`
	Notes             *string         `json:"notes,omitempty"`
	ReceivedAt        time.Time       `json:"received_at"`
	CreatedAt         time.Time       `json:"created_at"`
}

// BatchListResponse lista de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
}

// InventorySummaryResponse recuento de lotes con stock por estado.
type InventorySummaryResponse struct {
	LocationID string         `json:"location_id"`
	ByStatus   map[string]int `json:"by_status"`
	Total      int            `json:"total"`
}
