package quotation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/application/quotation"
	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
)

var fixedNow = time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(s *store) *quotation.UseCase {
	return quotation.NewUseCase(&fakeQuotationRepo{s}, &fakeProductRepo{s}, &fakeTx{s}, nil, "MA").
		WithClock(func() time.Time { return fixedNow })
}

func createRequest(lines ...dto.QuotationLineRequest) dto.CreateQuotationRequest {
	return dto.CreateQuotationRequest{
		ClientName:  "Ahmed Benali",
		ClientPhone: "0661336617",
		Type:        "client",
		Lines:       lines,
	}
}

func lineReq(productID, length, width, qty string) dto.QuotationLineRequest {
	return dto.QuotationLineRequest{ProductID: productID, Length: dec(length), Width: dec(width), Quantity: dec(qty)}
}

func mustCreate(t *testing.T, uc *quotation.UseCase, lines ...dto.QuotationLineRequest) *dto.QuotationResponse {
	t.Helper()
	q, err := uc.Create(context.Background(), createRequest(lines...))
	require.NoError(t, err)
	return q
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ValorizaYAsignaReferencia(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre Carrara", "100", "50")
	uc := newUseCase(s)

	q := mustCreate(t, uc, lineReq("p1", "2", "3", "1"))

	assert.Equal(t, "20250307001", q.Reference)
	assert.Equal(t, entity.QuotationStatusPending, q.Status)
	assert.Equal(t, "+212661336617", q.ClientPhone)
	assert.True(t, q.TotalAmount.Equal(dec("600")))
	require.Len(t, q.Lines, 1)
	assert.Equal(t, "Marbre Carrara", q.Lines[0].ProductName)
	assert.True(t, s.stock("p1").Equal(dec("50")), "crear no toca el stock")
}

func TestCreate_ReferenciasConsecutivas(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "0")
	uc := newUseCase(s)

	first := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	second := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))

	assert.Equal(t, "20250307001", first.Reference)
	assert.Equal(t, "20250307002", second.Reference)
}

func TestCreate_ReintentaReferenciaDuplicada(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "0")
	s.quotations["legacy"] = &entity.Quotation{ID: "legacy", Reference: "20250307001", Status: entity.QuotationStatusPending}
	uc := newUseCase(s)

	q := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))

	assert.Equal(t, "20250307002", q.Reference)
}

func TestCreate_ProductoInexistente(t *testing.T) {
	uc := newUseCase(newStore())

	_, err := uc.Create(context.Background(), createRequest(lineReq("nope", "1", "1", "1")))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_EntradasInvalidas(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "0")
	uc := newUseCase(s)

	_, err := uc.Create(context.Background(), createRequest(lineReq("p1", "0", "1", "1")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "dimensión cero")

	req := createRequest(lineReq("p1", "1", "1", "1"))
	req.ClientPhone = "12"
	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "teléfono inválido")

	_, err = uc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	assert.Empty(t, s.quotations)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestSetStatus_ValidarDescuentaStock(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "100", "50")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "2", "3", "1"))

	got, err := uc.SetStatus(context.Background(), q.ID, "validated", "user-1")
	require.NoError(t, err)

	assert.Equal(t, entity.QuotationStatusValidated, got.Status)
	require.NotNil(t, got.StockDebitedAt)
	assert.True(t, s.stock("p1").Equal(dec("44")))
	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.Equal(t, q.ID, mov.TransactionID)
	assert.Equal(t, q.Reference, mov.Reference)
	assert.Equal(t, "user-1", mov.CreatedBy)
	assert.True(t, mov.Quantity.Equal(dec("-6")), "las salidas se registran en negativo")
}

func TestSetStatus_ValidarDosVecesNoDescuentaDeNuevo(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "100", "50")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "2", "3", "1"))

	_, err := uc.SetStatus(context.Background(), q.ID, "validated", "")
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), q.ID, "validé", "")
	require.NoError(t, err)

	assert.True(t, s.stock("p1").Equal(dec("44")))
	assert.Len(t, s.movements, 1)
}

func TestSetStatus_StockInsuficiente(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre Nero", "100", "5")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "5", "2", "1"))

	_, err := uc.SetStatus(context.Background(), q.ID, "validated", "")

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Marbre Nero", stockErr.ProductName)
	assert.True(t, stockErr.Current.Equal(dec("5")))
	assert.True(t, stockErr.Requested.Equal(dec("10")))

	assert.True(t, s.stock("p1").Equal(dec("5")))
	assert.Equal(t, entity.QuotationStatusPending, s.quotations[q.ID].Status)
	assert.Nil(t, s.quotations[q.ID].StockDebitedAt)
}

func TestSetStatus_FalloParcialNoDejaRastro(t *testing.T) {
	s := newStore()
	s.addProduct("a", "A", "10", "10")
	s.addProduct("b", "B", "10", "1")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("a", "2", "2", "1"), lineReq("b", "2", "1", "1"))

	_, err := uc.SetStatus(context.Background(), q.ID, "validated", "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.stock("a").Equal(dec("10")), "la primera línea no queda descontada")
	assert.True(t, s.stock("b").Equal(dec("1")))
	assert.Empty(t, s.movements)
}

func TestSetStatus_MismoProductoEnVariasLineas(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "10")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "2", "2", "1"), lineReq("p1", "3", "1", "1"))

	_, err := uc.SetStatus(context.Background(), q.ID, "validated", "")
	require.NoError(t, err)

	assert.True(t, s.stock("p1").Equal(dec("3")))
	assert.Len(t, s.movements, 2)
}

func TestSetStatus_RechazadaAValidada(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "10")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))

	_, err := uc.SetStatus(context.Background(), q.ID, "rejeté", "")
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusRejected, s.quotations[q.ID].Status)
	assert.True(t, s.stock("p1").Equal(dec("10")), "rechazar no toca el stock")

	_, err = uc.SetStatus(context.Background(), q.ID, "validated", "")
	require.NoError(t, err)
	assert.True(t, s.stock("p1").Equal(dec("9")))
}

func TestSetStatus_ValidadaSeSobrescribeSinTocarStock(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "10")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	_, err := uc.SetStatus(context.Background(), q.ID, "validated", "")
	require.NoError(t, err)
	require.True(t, s.stock("p1").Equal(dec("9")))

	out, err := uc.SetStatus(context.Background(), q.ID, "rejected", "")
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusRejected, out.Status)
	assert.Equal(t, entity.QuotationStatusRejected, s.quotations[q.ID].Status)
	assert.True(t, s.stock("p1").Equal(dec("9")), "no se devuelve stock")
	assert.NotNil(t, s.quotations[q.ID].StockDebitedAt)

	_, err = uc.SetStatus(context.Background(), q.ID, "pending", "")
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusPending, s.quotations[q.ID].Status)

	_, err = uc.SetStatus(context.Background(), q.ID, "validated", "")
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusValidated, s.quotations[q.ID].Status)
	assert.True(t, s.stock("p1").Equal(dec("9")), "volver a validar no descuenta de nuevo")
	assert.Len(t, s.movements, 1)
}

func TestSetStatus_EstadoDesconocidoAntesQueNotFound(t *testing.T) {
	s := newStore()
	uc := newUseCase(s)

	_, err := uc.SetStatus(context.Background(), "missing", "archived", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, s.txCount, "no abre transacción")

	_, err = uc.SetStatus(context.Background(), "missing", "validated", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / Search / List
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "10")
	uc := newUseCase(s)
	pending := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	validated := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	_, err := uc.SetStatus(context.Background(), validated.ID, "validated", "")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), pending.ID))
	assert.NotContains(t, s.quotations, pending.ID)

	err = uc.Delete(context.Background(), validated.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Contains(t, s.quotations, validated.ID)

	assert.ErrorIs(t, uc.Delete(context.Background(), "missing"), domain.ErrNotFound)
}

func TestSearch(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "10")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))

	_, err := uc.Search(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	found, err := uc.Search(context.Background(), "0307")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, q.ID, found[0].ID)

	found, err = uc.Search(context.Background(), "benali")
	require.NoError(t, err)
	assert.Len(t, found, 1, "sin distinguir mayúsculas")

	found, err = uc.Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestSearch_DevuelveTodasLasCoincidencias(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "10")
	uc := newUseCase(s)
	first := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	for i := 0; i < 59; i++ {
		mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	}

	found, err := uc.Search(context.Background(), "Benali")
	require.NoError(t, err)
	assert.Len(t, found, 60)

	ids := make([]string, 0, len(found))
	for _, q := range found {
		ids = append(ids, q.ID)
	}
	assert.Contains(t, ids, first.ID, "la más antigua también aparece")
}

func TestList_Filtros(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "10", "10")
	uc := newUseCase(s)
	a := mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	mustCreate(t, uc, lineReq("p1", "1", "1", "1"))
	_, err := uc.SetStatus(context.Background(), a.ID, "rejected", "")
	require.NoError(t, err)

	all, err := uc.List(context.Background(), "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)
	assert.Equal(t, 20, all.Page.Limit)

	rejected, err := uc.List(context.Background(), "rejeté", "", dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rejected.Items, 1)
	assert.Equal(t, a.ID, rejected.Items[0].ID)

	_, err = uc.List(context.Background(), "archived", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invoice
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice(t *testing.T) {
	s := newStore()
	s.addProduct("p1", "Marbre", "100", "50")
	uc := newUseCase(s)
	q := mustCreate(t, uc, lineReq("p1", "2", "3", "1"))

	_, err := uc.Invoice(context.Background(), q.ID, dec("200"))
	assert.ErrorIs(t, err, domain.ErrInvalidState, "pendiente no se factura")

	_, err = uc.SetStatus(context.Background(), q.ID, "validated", "")
	require.NoError(t, err)

	inv, err := uc.Invoice(context.Background(), q.ID, dec("200"))
	require.NoError(t, err)
	assert.True(t, inv.TotalAmount.Equal(dec("600")))
	assert.True(t, inv.RemainingDue.Equal(dec("400")))
	assert.Equal(t, q.Reference, inv.Quotation.Reference)

	_, err = uc.Invoice(context.Background(), "missing", dec("0"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
