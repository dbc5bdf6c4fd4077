package repository

import (
	"context"
	"time"

	"github.com/luxymarbre/devis-api/internal/domain/entity"
)

// QuotationFilter filtros de listado de cotizaciones.
type QuotationFilter struct {
	Status string // canónico (pending|validated|rejected); vacío = todos
	Type   string // client|supplier; vacío = todos
	Limit  int
	Offset int
}

// QuotationRepository define el puerto de persistencia del agregado Quotation.
// Las lecturas devuelven las líneas en su orden original y con ProductName resuelto.
// GetByID y GetByIDForUpdate devuelven (nil, nil) cuando la cotización no existe.
type QuotationRepository interface {
	// NextReferenceSequence incrementa de forma atómica el contador del día y devuelve el nuevo valor.
	NextReferenceSequence(ctx context.Context, day time.Time) (int64, error)
	// Create persiste cabecera y líneas. Devuelve domain.ErrDuplicate si la referencia ya existe.
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Quotation, error)
	List(ctx context.Context, filter QuotationFilter) ([]*entity.Quotation, error)
	Count(ctx context.Context, filter QuotationFilter) (int64, error)
	// Search busca sin distinguir mayúsculas en referencia y nombre del cliente. Devuelve todas las coincidencias.
	Search(ctx context.Context, term string) ([]*entity.Quotation, error)
	UpdateStatus(ctx context.Context, id, status string, stockDebitedAt *time.Time, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
