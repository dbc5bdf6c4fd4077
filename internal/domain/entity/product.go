package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto del catálogo (mármol vendido por metro cuadrado).
const (
	DefaultProductType = "Marbre"
	DefaultProductUnit = "M²"
)

// Product representa una piedra o mármol del catálogo.
// Stock se mide en la misma unidad de superficie que consumen las líneas de cotización
// y solo cambia vía movimientos de inventario o la validación de una cotización.
type Product struct {
	ID        string
	Name      string
	Type      string
	Unit      string
	Stock     decimal.Decimal // nunca negativo
	Price     decimal.Decimal // precio por unidad de superficie
	CreatedAt time.Time
	UpdatedAt time.Time
}
