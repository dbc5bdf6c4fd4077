package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name  string          `json:"name" validate:"required,min=1,max=200"`
	Type  string          `json:"type" validate:"omitempty,max=100"`
	Unit  string          `json:"unit" validate:"omitempty,max=20"`
	Price decimal.Decimal `json:"price" validate:"dnonneg"`
	Stock decimal.Decimal `json:"stock" validate:"dnonneg"` // stock inicial; luego solo vía movimientos
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock).
type UpdateProductRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Type  *string          `json:"type" validate:"omitempty,max=100"`
	Unit  *string          `json:"unit" validate:"omitempty,max=20"`
	Price *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
