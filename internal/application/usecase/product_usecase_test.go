package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/application/usecase"
	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

type memProductRepo struct {
	repository.ProductRepository
	items map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	stock := r.items[p.ID].Stock
	cp := *p
	cp.Stock = stock
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) Count(_ context.Context, _ repository.ProductFilter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProductCreate_Defaults(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: " Carrara ", Price: dec("350"), Stock: dec("40")})
	require.NoError(t, err)

	assert.Equal(t, "Carrara", p.Name)
	assert.Equal(t, entity.DefaultProductType, p.Type)
	assert.Equal(t, entity.DefaultProductUnit, p.Unit)
	assert.True(t, p.Stock.Equal(dec("40")))
}

func TestProductCreate_Invalidos(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Name: "X", Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	repo := newMemProductRepo()
	uc := usecase.NewProductUseCase(repo)
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Carrara", Price: dec("100"), Stock: dec("12")})
	require.NoError(t, err)

	price := dec("120")
	name := "Carrara Extra"
	out, err := uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Carrara Extra", out.Name)
	assert.True(t, out.Price.Equal(dec("120")))
	assert.True(t, repo.items[p.ID].Stock.Equal(dec("12")))
}

func TestProduct_NotFound(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())

	_, err := uc.GetByID(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(context.Background(), "x", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(context.Background(), "x"), domain.ErrNotFound)
}

func TestProductList(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())
	for _, n := range []string{"A", "B"} {
		_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: n})
		require.NoError(t, err)
	}

	list, err := uc.List(context.Background(), "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit)
}
