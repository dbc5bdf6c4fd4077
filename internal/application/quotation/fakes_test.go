package quotation_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

// store estado en memoria compartido por los repos fake.
type store struct {
	products   map[string]*entity.Product
	quotations map[string]*entity.Quotation
	movements  []*entity.InventoryMovement
	counters   map[string]int64
	txCount    int
}

func newStore() *store {
	return &store{
		products:   map[string]*entity.Product{},
		quotations: map[string]*entity.Quotation{},
		counters:   map[string]int64{},
	}
}

func (s *store) addProduct(id, name, price, stock string) {
	s.products[id] = &entity.Product{
		ID: id, Name: name, Type: entity.DefaultProductType, Unit: entity.DefaultProductUnit,
		Price: decimal.RequireFromString(price), Stock: decimal.RequireFromString(stock),
	}
}

func (s *store) stock(id string) decimal.Decimal { return s.products[id].Stock }

func cloneQuotation(q *entity.Quotation) *entity.Quotation {
	c := *q
	c.Lines = append([]entity.QuotationLine(nil), q.Lines...)
	if q.StockDebitedAt != nil {
		t := *q.StockDebitedAt
		c.StockDebitedAt = &t
	}
	return &c
}

func (s *store) snapshot() *store {
	c := newStore()
	for k, p := range s.products {
		cp := *p
		c.products[k] = &cp
	}
	for k, q := range s.quotations {
		c.quotations[k] = cloneQuotation(q)
	}
	c.movements = append(c.movements, s.movements...)
	for k, v := range s.counters {
		c.counters[k] = v
	}
	return c
}

func (s *store) restore(from *store) {
	s.products = from.products
	s.quotations = from.quotations
	s.movements = from.movements
	s.counters = from.counters
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// fakeTx confirma solo si fn termina sin error; si no, restaura la foto previa.
type fakeTx struct{ s *store }

func (t *fakeTx) RunQuotation(ctx context.Context, fn func(
	repository.QuotationRepository,
	repository.ProductRepository,
	repository.InventoryMovementRepository,
) error) error {
	t.s.txCount++
	before := t.s.snapshot()
	if err := fn(&fakeQuotationRepo{t.s}, &fakeProductRepo{t.s}, &fakeMovementRepo{t.s}); err != nil {
		t.s.restore(before)
		return err
	}
	return nil
}

// ── Productos ────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *store }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) GetManyForUpdate(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Stock = cur.Stock
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ repository.ProductFilter) (int64, error) {
	return int64(len(r.s.products)), nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.s.products, id)
	return nil
}

// ── Cotizaciones ─────────────────────────────────────────────────────────────

type fakeQuotationRepo struct{ s *store }

func (r *fakeQuotationRepo) NextReferenceSequence(_ context.Context, day time.Time) (int64, error) {
	key := day.Format("20060102")
	r.s.counters[key]++
	return r.s.counters[key], nil
}

func (r *fakeQuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	for _, existing := range r.s.quotations {
		if existing.Reference == q.Reference {
			return domain.ErrDuplicate
		}
	}
	r.s.quotations[q.ID] = cloneQuotation(q)
	return nil
}

func (r *fakeQuotationRepo) GetByID(_ context.Context, id string) (*entity.Quotation, error) {
	q, ok := r.s.quotations[id]
	if !ok {
		return nil, nil
	}
	return cloneQuotation(q), nil
}

func (r *fakeQuotationRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeQuotationRepo) sorted() []*entity.Quotation {
	out := make([]*entity.Quotation, 0, len(r.s.quotations))
	for _, q := range r.s.quotations {
		out = append(out, cloneQuotation(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference > out[j].Reference })
	return out
}

func (r *fakeQuotationRepo) filtered(f repository.QuotationFilter) []*entity.Quotation {
	var out []*entity.Quotation
	for _, q := range r.sorted() {
		if f.Status != "" && q.Status != f.Status {
			continue
		}
		if f.Type != "" && q.Type != f.Type {
			continue
		}
		out = append(out, q)
	}
	return out
}

func (r *fakeQuotationRepo) List(_ context.Context, f repository.QuotationFilter) ([]*entity.Quotation, error) {
	all := r.filtered(f)
	if f.Offset >= len(all) {
		return nil, nil
	}
	end := f.Offset + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[f.Offset:end], nil
}

func (r *fakeQuotationRepo) Count(_ context.Context, f repository.QuotationFilter) (int64, error) {
	return int64(len(r.filtered(f))), nil
}

func (r *fakeQuotationRepo) Search(_ context.Context, term string) ([]*entity.Quotation, error) {
	term = strings.ToLower(term)
	var out []*entity.Quotation
	for _, q := range r.sorted() {
		if strings.Contains(strings.ToLower(q.Reference), term) || strings.Contains(strings.ToLower(q.ClientName), term) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuotationRepo) UpdateStatus(_ context.Context, id, status string, debitedAt *time.Time, updatedAt time.Time) error {
	q, ok := r.s.quotations[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.Status = status
	q.StockDebitedAt = debitedAt
	q.UpdatedAt = updatedAt
	return nil
}

func (r *fakeQuotationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.quotations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.quotations, id)
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type fakeMovementRepo struct{ s *store }

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID string, _, _ *time.Time, _, _ int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByTransaction(_ context.Context, txID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.TransactionID == txID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ── PDF / archivo ────────────────────────────────────────────────────────────

type fakeGenerator struct{}

func (fakeGenerator) GenerateQuotationPDF(_ context.Context, q *entity.Quotation) ([]byte, error) {
	return []byte("%PDF-devis-" + q.Reference), nil
}

func (fakeGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	return []byte("%PDF-facture-" + inv.Quotation.Reference), nil
}

type fakeArchive struct {
	keys []string
	err  error
}

func (a *fakeArchive) Store(_ context.Context, key string, _ []byte, _ string) error {
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, key)
	return nil
}
