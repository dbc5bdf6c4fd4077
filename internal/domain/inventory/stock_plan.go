package inventory

import (
	"fmt"

	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Debit es el descuento calculado para una línea de cotización.
type Debit struct {
	ProductID string
	Quantity  decimal.Decimal // superficie descontada (positiva)
	Before    decimal.Decimal
	After     decimal.Decimal
}

// PlanDebits calcula (servicio de dominio, sin efectos) los descuentos de stock de una
// cotización en el orden de sus líneas. Un mismo producto en varias líneas acumula saldo.
// Se detiene en la primera línea que dejaría stock negativo y devuelve *domain.InsufficientStockError.
func PlanDebits(lines []entity.QuotationLine, products map[string]*entity.Product) ([]Debit, error) {
	balance := make(map[string]decimal.Decimal, len(products))
	debits := make([]Debit, 0, len(lines))
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok || p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
		}
		current, seen := balance[p.ID]
		if !seen {
			current = p.Stock
		}
		next := current.Sub(line.Surface)
		if next.IsNegative() {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Current:     current,
				Requested:   line.Surface,
			}
		}
		balance[p.ID] = next
		debits = append(debits, Debit{ProductID: p.ID, Quantity: line.Surface, Before: current, After: next})
	}
	return debits, nil
}

// FinalStocks devuelve el stock resultante por producto tras aplicar debits.
func FinalStocks(debits []Debit) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(debits))
	for _, d := range debits {
		out[d.ProductID] = d.After
	}
	return out
}

// ApplyMovement calcula el stock tras un movimiento manual (IN, OUT, ADJUSTMENT).
// quantity es siempre la magnitud para IN/OUT; en ADJUSTMENT puede ser negativa.
func ApplyMovement(stock decimal.Decimal, movementType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	var next decimal.Decimal
	switch movementType {
	case entity.MovementTypeIN:
		if !quantity.IsPositive() {
			return stock, domain.ErrInvalidInput
		}
		next = stock.Add(quantity)
	case entity.MovementTypeOUT:
		if !quantity.IsPositive() {
			return stock, domain.ErrInvalidInput
		}
		next = stock.Sub(quantity)
	case entity.MovementTypeADJUSTMENT:
		if quantity.IsZero() {
			return stock, domain.ErrInvalidInput
		}
		next = stock.Add(quantity)
	default:
		return stock, domain.ErrInvalidInput
	}
	if next.IsNegative() {
		return stock, domain.ErrInsufficientStock
	}
	return next, nil
}
