package quotation

import (
	"fmt"

	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProjectInvoice construye la factura de una cotización validada.
// RemainingDue = TotalAmount - AdvancePaid; un anticipo mayor al total se acepta (saldo negativo).
func ProjectInvoice(q *entity.Quotation, advancePaid decimal.Decimal) (*entity.Invoice, error) {
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if !q.IsValidated() {
		return nil, fmt.Errorf("%w: solo las cotizaciones validadas se facturan (estado %s)", domain.ErrInvalidState, q.Status)
	}
	if advancePaid.IsNegative() {
		return nil, fmt.Errorf("%w: el anticipo no puede ser negativo", domain.ErrInvalidInput)
	}
	return &entity.Invoice{
		Quotation:    q,
		TotalAmount:  q.TotalAmount,
		AdvancePaid:  advancePaid,
		RemainingDue: q.TotalAmount.Sub(advancePaid),
	}, nil
}
