package entity

import "github.com/shopspring/decimal"

// Invoice es la proyección (no persistida) de una cotización validada más el anticipo recibido.
type Invoice struct {
	Quotation    *Quotation
	TotalAmount  decimal.Decimal
	AdvancePaid  decimal.Decimal
	RemainingDue decimal.Decimal // puede ser negativo si el anticipo supera el total
}
