package dto

import "time"

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Unit        string  `json:"unit" validate:"required,min=1,max=20"`
	StorageType string  `json:"storage_type" validate:"required,oneof=refrigerated frozen dry ambient"`
	GTIN        *string `json:"gtin" validate:"omitempty,max=14"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Unit        *string `json:"unit" validate:"omitempty,min=1,max=20"`
	StorageType *string `json:"storage_type" validate:"omitempty,oneof=refrigerated frozen dry ambient"`
	GTIN        *string `json:"gtin" validate:"omitempty,max=14"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	StorageType string    `json:"storage_type"`
	GTIN        *string   `json:"gtin,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse lista de productos del catálogo del negocio.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
