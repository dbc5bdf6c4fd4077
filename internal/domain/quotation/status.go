package quotation

import (
	"fmt"

	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
)

// Transition describe el efecto de un cambio de estado ya autorizado.
type Transition struct {
	From       string
	To         string
	DebitStock bool // true solo al entrar a validated sin stock descontado previamente
	NoOp       bool // el estado no cambia
}

// PlanTransition valida el cambio de estado pedido para q.
//
// Reglas:
//   - estado desconocido → ErrInvalidInput.
//   - validated → validated es un no-op (nunca descuenta dos veces).
//   - cualquier otro cambio sobrescribe el estado; solo entrar a validated con el
//     stock aún sin descontar produce el descuento. validated → pending|rejected no
//     devuelve stock y un regreso posterior a validated no vuelve a descontar.
func PlanTransition(q *entity.Quotation, requested string) (Transition, error) {
	next, ok := entity.NormalizeQuotationStatus(requested)
	if !ok {
		return Transition{}, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, requested)
	}
	t := Transition{From: q.Status, To: next, NoOp: q.Status == next}
	if next == entity.QuotationStatusValidated && !q.IsValidated() && !q.StockDebited() {
		t.DebitStock = true
	}
	return t, nil
}
