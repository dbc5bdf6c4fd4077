// Package quotation contiene los servicios de dominio de la cotización:
// valorización de líneas, referencia, máquina de estados y proyección de factura.
package quotation

import (
	"fmt"

	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PriceLine convierte una solicitud (dimensiones + cantidad) en una línea valorizada.
// Superficie = Largo × Ancho × Cantidad; Total = Superficie × PrecioUnitario.
// El precio unitario se copia del producto en este momento y no se vuelve a leer.
func PriceLine(product *entity.Product, length, width, quantity decimal.Decimal) (entity.QuotationLine, error) {
	if product == nil {
		return entity.QuotationLine{}, domain.ErrNotFound
	}
	if !length.IsPositive() || !width.IsPositive() || !quantity.IsPositive() {
		return entity.QuotationLine{}, fmt.Errorf("%w: largo, ancho y cantidad deben ser mayores que cero", domain.ErrInvalidInput)
	}
	surface := length.Mul(width).Mul(quantity)
	return entity.QuotationLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		Length:      length,
		Width:       width,
		Quantity:    quantity,
		Surface:     surface,
		UnitPrice:   product.Price,
		TotalPrice:  surface.Mul(product.Price),
	}, nil
}
