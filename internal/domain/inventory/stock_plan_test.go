package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/luxymarbre/devis-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(productID, surface string) entity.QuotationLine {
	return entity.QuotationLine{ProductID: productID, Surface: dec(surface)}
}

func TestPlanDebits_DescuentaSuperficie(t *testing.T) {
	products := map[string]*entity.Product{
		"p": {ID: "p", Name: "Marbre", Stock: dec("50")},
	}

	debits, err := inventory.PlanDebits([]entity.QuotationLine{line("p", "6")}, products)
	require.NoError(t, err)
	require.Len(t, debits, 1)

	assert.True(t, debits[0].After.Equal(dec("44")))
	assert.True(t, products["p"].Stock.Equal(dec("50")), "el plan no modifica el producto")
}

func TestPlanDebits_StockInsuficiente(t *testing.T) {
	products := map[string]*entity.Product{
		"p": {ID: "p", Name: "Marbre", Stock: dec("5")},
	}

	_, err := inventory.PlanDebits([]entity.QuotationLine{line("p", "10")}, products)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Marbre", stockErr.ProductName)
	assert.True(t, stockErr.Current.Equal(dec("5")))
	assert.True(t, stockErr.Requested.Equal(dec("10")))
}

func TestPlanDebits_MismoProductoAcumula(t *testing.T) {
	products := map[string]*entity.Product{
		"p": {ID: "p", Name: "Marbre", Stock: dec("10")},
	}

	_, err := inventory.PlanDebits([]entity.QuotationLine{line("p", "6"), line("p", "6")}, products)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.True(t, stockErr.Current.Equal(dec("4")), "la segunda línea ve el saldo tras la primera")
}

func TestPlanDebits_SeDetieneEnPrimerFallo(t *testing.T) {
	products := map[string]*entity.Product{
		"a": {ID: "a", Name: "A", Stock: dec("1")},
		"b": {ID: "b", Name: "B", Stock: dec("1")},
	}

	_, err := inventory.PlanDebits([]entity.QuotationLine{line("a", "2"), line("b", "2")}, products)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "a", stockErr.ProductID, "falla la primera línea en orden")
}

func TestPlanDebits_ProductoFaltante(t *testing.T) {
	_, err := inventory.PlanDebits([]entity.QuotationLine{line("x", "1")}, map[string]*entity.Product{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinalStocks(t *testing.T) {
	products := map[string]*entity.Product{
		"a": {ID: "a", Stock: dec("10")},
		"b": {ID: "b", Stock: dec("3")},
	}
	debits, err := inventory.PlanDebits([]entity.QuotationLine{line("a", "2"), line("b", "3"), line("a", "1.5")}, products)
	require.NoError(t, err)

	final := inventory.FinalStocks(debits)
	assert.True(t, final["a"].Equal(dec("6.5")))
	assert.True(t, final["b"].Equal(dec("0")))
}

func TestApplyMovement(t *testing.T) {
	next, err := inventory.ApplyMovement(dec("10"), entity.MovementTypeIN, dec("5"))
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("15")))

	next, err = inventory.ApplyMovement(dec("10"), entity.MovementTypeOUT, dec("4"))
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("6")))

	next, err = inventory.ApplyMovement(dec("10"), entity.MovementTypeADJUSTMENT, dec("-2.5"))
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("7.5")))

	_, err = inventory.ApplyMovement(dec("3"), entity.MovementTypeOUT, dec("4"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = inventory.ApplyMovement(dec("3"), entity.MovementTypeIN, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.ApplyMovement(dec("3"), "TRANSFER", dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
