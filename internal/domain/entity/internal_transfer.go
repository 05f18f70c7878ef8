package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus estado de un traspaso interno entre locales.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferAccepted  TransferStatus = "accepted"
	TransferRejected  TransferStatus = "rejected"
	TransferCompleted TransferStatus = "completed"
)

// IsValid indica si el estado es uno de los valores conocidos.
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferPending, TransferAccepted, TransferRejected, TransferCompleted:
		return true
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func (s TransferStatus) IsTerminal() bool {
	return s == TransferRejected || s == TransferCompleted
}

// CanTransitionTo aplica la máquina de estados del traspaso:
// pending -> accepted | rejected; accepted -> completed.
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	switch s {
	case TransferPending:
		return next == TransferAccepted || next == TransferRejected
	case TransferAccepted:
		return next == TransferCompleted
	}
	return false
}

// InternalTransfer traspaso de cantidad de un lote entre dos locales del
// mismo negocio. Al completarse se descuenta del lote origen; el alta en
// el local destino es un registro manual posterior.
type InternalTransfer struct {
	ID             string          `json:"id"`
	BatchID        string          `json:"batch_id"`
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Status         TransferStatus  `json:"status"`
	Notes          *string         `json:"notes,omitempty"`
	RequestedBy    string          `json:"requested_by"`
	ProcessedBy    *string         `json:"processed_by,omitempty"`
	ProcessedAt    *time.Time      `json:"processed_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
