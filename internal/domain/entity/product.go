package entity

import "time"

// StorageType tipo de conservación de un producto.
type StorageType string

const (
	StorageRefrigerated StorageType = "refrigerated"
	StorageFrozen       StorageType = "frozen"
	StorageDry          StorageType = "dry"
	StorageAmbient      StorageType = "ambient"
)

// IsValid indica si el tipo de conservación es uno de los valores conocidos.
func (t StorageType) IsValid() bool {
	switch t {
	case StorageRefrigerated, StorageFrozen, StorageDry, StorageAmbient:
		return true
	}
	return false
}

// Product es el catálogo del negocio: nombre, unidad y tipo de
// conservación, compartido por todos sus locales. Los lotes (Batch)
// referencian al producto.
type Product struct {
	ID          string      `json:"id"`
	BusinessID  string      `json:"business_id"`
	Name        string      `json:"name"`
	Unit        string      `json:"unit"` // kg, l, ud...
	StorageType StorageType `json:"storage_type"`
	GTIN        *string     `json:"gtin,omitempty"` // código de barras, si se conoce
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
