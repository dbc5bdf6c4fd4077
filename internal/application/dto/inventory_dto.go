package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// En ADJUSTMENT la cantidad puede ser negativa (delta).
type RegisterMovementRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Type      string          `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference" validate:"omitempty,max=200"`
}

// MovementResponse un movimiento del kardex.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reference     string          `json:"reference,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// RegisterMovementResponse resultado de registrar un movimiento.
type RegisterMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Stock    decimal.Decimal  `json:"stock"` // stock resultante del producto
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto bajo el umbral de stock.
type ReplenishmentSuggestionDTO struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Unit              string          `json:"unit"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	Threshold         decimal.Decimal `json:"threshold"`
	IdealStock        decimal.Decimal `json:"ideal_stock"`         // Threshold * 1.5
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	SurfaceSold90Days decimal.Decimal `json:"surface_sold_90d"`    // m² en cotizaciones validadas
	Priority          int             `json:"priority"`            // 1 = más urgente
}
