package repository

import (
	"context"

	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtros de listado del catálogo.
type ProductFilter struct {
	Search string // coincidencia parcial sobre el nombre (vacío = todos)
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT … FOR UPDATE). Solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// GetManyForUpdate bloquea varias filas en orden ascendente de id.
	// Los ids inexistentes simplemente no aparecen en el mapa.
	GetManyForUpdate(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// Update modifica nombre, tipo, unidad y precio. El stock no se toca aquí.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	Delete(ctx context.Context, id string) error
}
