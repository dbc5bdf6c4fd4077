package quotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
)

// New arma una cotización pendiente a partir de líneas ya valorizadas.
func New(id, reference, clientName, clientPhone, quotationType string, lines []entity.QuotationLine, now time.Time) (*entity.Quotation, error) {
	clientName = strings.TrimSpace(clientName)
	clientPhone = strings.TrimSpace(clientPhone)
	if clientName == "" || clientPhone == "" {
		return nil, fmt.Errorf("%w: nombre y teléfono del cliente son requeridos", domain.ErrInvalidInput)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: la cotización necesita al menos un producto", domain.ErrInvalidInput)
	}
	qType, ok := entity.NormalizeQuotationType(quotationType)
	if !ok {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, quotationType)
	}
	q := &entity.Quotation{
		ID:          id,
		Reference:   reference,
		ClientName:  clientName,
		ClientPhone: clientPhone,
		Type:        qType,
		Lines:       lines,
		Status:      entity.QuotationStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	q.Recalculate()
	return q, nil
}

// NormalizeSearchTerm limpia el texto de búsqueda; vacío es ErrInvalidInput.
func NormalizeSearchTerm(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: no se indicó término de búsqueda", domain.ErrInvalidInput)
	}
	return text, nil
}
