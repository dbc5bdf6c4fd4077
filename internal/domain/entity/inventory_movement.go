package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste
)

// InventoryMovement representa un movimiento de stock de un producto.
// TransactionID agrupa los movimientos de una misma operación (ej: el ID de la cotización validada).
type InventoryMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal // positivo entrada/ajuste+, negativo salida
	Reference     string          // referencia de cotización, nota de ajuste, etc.
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
