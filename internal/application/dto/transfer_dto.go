package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest solicitud de traspaso de un lote a otro local.
type CreateTransferRequest struct {
	BatchID      string          `json:"batch_id" validate:"required"`
	ToLocationID string          `json:"to_location_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	Notes        *string         `json:"notes"`
}

// TransferListRequest filtros de listado de traspasos.
type TransferListRequest struct {
	Status    *string `query:"status"`
	Direction string  `query:"direction"` // incoming, outgoing o vacío
}

// TransferResponse salida de un traspaso.
type TransferResponse struct {
	ID             string          `json:"id"`
	BatchID        string          `json:"batch_id"`
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Status         string          `json:"status"`
	Notes          *string         `json:"notes,omitempty"`
	RequestedBy    string          `json:"requested_by"`
	ProcessedBy    *string         `json:"processed_by,omitempty"`
	ProcessedAt    *time.Time      `json:"processed_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TransferListResponse lista de traspasos.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
}
