// Package quotation orquesta los casos de uso de cotizaciones: creación con referencia única,
// cambios de estado con descuento de stock transaccional, búsqueda, borrado y factura.
package quotation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/luxymarbre/devis-api/internal/domain/inventory"
	"github.com/luxymarbre/devis-api/internal/domain/quotation"
	"github.com/luxymarbre/devis-api/internal/domain/repository"
	"github.com/luxymarbre/devis-api/pkg/logger"
	"github.com/luxymarbre/devis-api/pkg/phone"
)

const maxReferenceAttempts = 5

// UseCase casos de uso del agregado Quotation.
type UseCase struct {
	quotationRepo repository.QuotationRepository
	productRepo   repository.ProductRepository
	txRunner      TxRunner
	log           *logger.Logger
	phoneRegion   string
	now           func() time.Time
}

// NewUseCase construye el caso de uso. phoneRegion vacío usa phone.DefaultRegion.
func NewUseCase(
	quotationRepo repository.QuotationRepository,
	productRepo repository.ProductRepository,
	txRunner TxRunner,
	log *logger.Logger,
	phoneRegion string,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		quotationRepo: quotationRepo,
		productRepo:   productRepo,
		txRunner:      txRunner,
		log:           log,
		phoneRegion:   phoneRegion,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create valoriza las líneas, asigna una referencia única del día y persiste la cotización en estado pending.
//
// La secuencia sale de un contador atómico; si aun así la referencia choca con una existente
// (ErrDuplicate) se reintenta con una nueva secuencia.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	clientPhone, err := phone.NormalizeE164(in.ClientPhone, uc.phoneRegion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	lines := make([]entity.QuotationLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		product, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, fmt.Errorf("cotización: obtener producto: %w", err)
		}
		line, err := quotation.PriceLine(product, l.Length, l.Width, l.Quantity)
		if err != nil {
			return nil, fmt.Errorf("línea %d (producto %s): %w", i+1, l.ProductID, err)
		}
		lines = append(lines, line)
	}

	now := uc.now()
	q, err := quotation.New(uuid.New().String(), "", in.ClientName, clientPhone, in.Type, lines, now)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		seq, err := uc.quotationRepo.NextReferenceSequence(ctx, now)
		if err != nil {
			return nil, fmt.Errorf("cotización: secuencia de referencia: %w", err)
		}
		q.Reference = quotation.FormatReference(now, seq)
		err = uc.quotationRepo.Create(ctx, q)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt >= maxReferenceAttempts {
			return nil, err
		}
		uc.log.Warn().Str("reference", q.Reference).Int("attempt", attempt).Msg("referencia duplicada, reintentando")
	}

	uc.log.Info().
		Str("quotation_id", q.ID).
		Str("reference", q.Reference).
		Str("total", q.TotalAmount.String()).
		Msg("cotización creada")
	return toQuotationResponse(q), nil
}

// GetByID obtiene una cotización con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q), nil
}

// List lista cotizaciones (más recientes primero) con filtros opcionales de estado y tipo.
func (uc *UseCase) List(ctx context.Context, status, qType string, page dto.PageRequest) (*dto.QuotationListResponse, error) {
	page.DefaultPage()
	filter := repository.QuotationFilter{Limit: page.Limit, Offset: page.Offset}
	if status != "" {
		s, ok := entity.NormalizeQuotationStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
		}
		filter.Status = s
	}
	if qType != "" {
		t, ok := entity.NormalizeQuotationType(qType)
		if !ok {
			return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, qType)
		}
		filter.Type = t
	}
	list, err := uc.quotationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.quotationRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.QuotationListResponse{
		Items: toQuotationResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: int(total)},
	}, nil
}

// Search busca por referencia o nombre de cliente. Sin coincidencias devuelve lista vacía.
func (uc *UseCase) Search(ctx context.Context, text string) ([]dto.QuotationResponse, error) {
	term, err := quotation.NormalizeSearchTerm(text)
	if err != nil {
		return nil, err
	}
	list, err := uc.quotationRepo.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return toQuotationResponses(list), nil
}

// SetStatus cambia el estado de la cotización.
//
// Al entrar en validated se descuenta el stock de cada línea (superficie) en la misma
// transacción que el cambio de estado: las filas de producto se bloquean, se calcula el plan
// completo y ante cualquier fallo (ej. InsufficientStockError) no se aplica nada.
// Salir de validated sólo sobrescribe el estado: el stock no se devuelve y stock_debited_at
// se conserva, así que volver a validated no descuenta de nuevo.
func (uc *UseCase) SetStatus(ctx context.Context, id, status, userID string) (*dto.QuotationResponse, error) {
	if _, ok := entity.NormalizeQuotationStatus(status); !ok {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}

	var result *entity.Quotation
	var transition quotation.Transition
	err := uc.txRunner.RunQuotation(ctx, func(
		quotationRepo repository.QuotationRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		q, err := quotationRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		transition, err = quotation.PlanTransition(q, status)
		if err != nil {
			return err
		}
		result = q
		if transition.NoOp {
			return nil
		}

		now := uc.now()
		debitedAt := q.StockDebitedAt
		if transition.DebitStock {
			if err := debitStock(ctx, productRepo, movRepo, q, userID, now); err != nil {
				return err
			}
			debitedAt = &now
		}
		if err := quotationRepo.UpdateStatus(ctx, q.ID, transition.To, debitedAt, now); err != nil {
			return err
		}
		q.Status = transition.To
		q.StockDebitedAt = debitedAt
		q.UpdatedAt = now
		return nil
	})
	if err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			uc.log.Warn().
				Str("quotation_id", id).
				Str("product", stockErr.ProductName).
				Str("stock", stockErr.Current.String()).
				Str("requested", stockErr.Requested.String()).
				Msg("validación rechazada por stock insuficiente")
		}
		return nil, err
	}

	if !transition.NoOp {
		uc.log.Info().
			Str("quotation_id", result.ID).
			Str("from", transition.From).
			Str("to", transition.To).
			Bool("stock_debited", transition.DebitStock).
			Msg("estado de cotización actualizado")
	}
	return toQuotationResponse(result), nil
}

// debitStock bloquea los productos de q (orden ascendente de id), aplica el plan de descuento
// y registra un movimiento OUT por línea (cantidad negativa) con TransactionID = id de la cotización.
func debitStock(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	q *entity.Quotation,
	userID string,
	now time.Time,
) error {
	ids := distinctProductIDs(q.Lines)
	products, err := productRepo.GetManyForUpdate(ctx, ids)
	if err != nil {
		return err
	}
	debits, err := inventory.PlanDebits(q.Lines, products)
	if err != nil {
		return err
	}
	final := inventory.FinalStocks(debits)
	for _, productID := range ids {
		if err := productRepo.UpdateStock(ctx, productID, final[productID]); err != nil {
			return err
		}
	}
	for _, d := range debits {
		mov := &entity.InventoryMovement{
			TransactionID: q.ID,
			ProductID:     d.ProductID,
			Type:          entity.MovementTypeOUT,
			Quantity:      d.Quantity.Neg(),
			Reference:     q.Reference,
			Date:          now,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}

func distinctProductIDs(lines []entity.QuotationLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Strings(ids)
	return ids
}

// Delete elimina una cotización pendiente o rechazada. Una validada devuelve ErrInvalidState.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.RunQuotation(ctx, func(
		quotationRepo repository.QuotationRepository,
		_ repository.ProductRepository,
		_ repository.InventoryMovementRepository,
	) error {
		q, err := quotationRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if !q.CanDelete() {
			return fmt.Errorf("%w: no se puede eliminar una cotización %s", domain.ErrInvalidState, q.Status)
		}
		return quotationRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("quotation_id", id).Msg("cotización eliminada")
	return nil
}

// Invoice proyecta la factura de una cotización validada con el anticipo indicado.
func (uc *UseCase) Invoice(ctx context.Context, id string, advancePaid decimal.Decimal) (*dto.InvoiceResponse, error) {
	inv, err := uc.projectInvoice(ctx, id, advancePaid)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

func (uc *UseCase) projectInvoice(ctx context.Context, id string, advancePaid decimal.Decimal) (*entity.Invoice, error) {
	q, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return quotation.ProjectInvoice(q, advancePaid)
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.Quotation, error) {
	q, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}
