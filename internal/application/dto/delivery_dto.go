package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterDeliveryRequest registro de un albarán de entrada. Todas las
// líneas se registran atómicamente: cada línea genera un lote.
type RegisterDeliveryRequest struct {
	SupplierID *string `json:"supplier_id"`
	// SupplierName permite resolver o crear el proveedor por nombre cuando
	// no se conoce el ID (flujo OCR).
	SupplierName *string               `json:"supplier_name"`
	DeliveryDate string                `json:"delivery_date" validate:"required"` // YYYY-MM-DD
	Reference    *string               `json:"reference"`
	ImageURL     *string               `json:"image_url"`
	Notes        *string               `json:"notes"`
	Items        []DeliveryItemRequest `json:"items" validate:"required,min=1"`
}

// DeliveryItemRequest línea de albarán. ProductID o ProductName: si solo
// viene el nombre, se resuelve contra el catálogo o se crea el producto.
type DeliveryItemRequest struct {
	ProductID   *string         `json:"product_id"`
	ProductName *string         `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Unit        string          `json:"unit" validate:"required"`
	// StorageType de la línea; si falta se hereda del producto (ambient
	// para productos nuevos).
	StorageType *string `json:"storage_type" validate:"omitempty,oneof=refrigerated frozen dry ambient"`
	BatchNumber *string `json:"batch_number" validate:"omitempty,max=100"`
	ExpiryDate  *string `json:"expiry_date"` // YYYY-MM-DD
}

// DeliveryNoteResponse salida de un albarán.
type DeliveryNoteResponse struct {
	ID           string                 `json:"id"`
	LocationID   string                 `json:"location_id"`
	SupplierID   *string                `json:"supplier_id,omitempty"`
	SupplierName *string                `json:"supplier_name,omitempty"`
	DeliveryDate string                 `json:"delivery_date"` // YYYY-MM-DD
	Reference    *string                `json:"reference,omitempty"`
	ImageURL     *string                `json:"image_url,omitempty"`
	Notes        *string                `json:"notes,omitempty"`
	RegisteredBy string                 `json:"registered_by"`
	Items        []DeliveryItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// DeliveryItemResponse línea de albarán con el lote generado.
type DeliveryItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	ExpiryDate *string         `json:"expiry_date,omitempty"` // YYYY-MM-DD
	BatchID    string          `json:"batch_id,omitempty"`
}

// DeliveryListResponse lista paginada de albaranes.
type DeliveryListResponse struct {
	Items []DeliveryNoteResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
