package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// QuotationTotals resultado crudo de los contadores de cotizaciones.
type QuotationTotals struct {
	Total           int64
	Validated       int64
	Rejected        int64
	Pending         int64
	ValidatedAmount decimal.Decimal // suma de total_amount de las validadas
}

// MonthlyCount cantidad de cotizaciones creadas en un mes (1..12).
type MonthlyCount struct {
	Month int
	Count int64
}

// LabelCount par genérico etiqueta → cantidad (por estado, por tipo).
type LabelCount struct {
	Label string
	Count int64
}

// LowStockProduct producto por debajo del umbral de stock.
type LowStockProduct struct {
	ProductID string
	Name      string
	Unit      string
	Stock     decimal.Decimal
}

// ProductSurfaceSold superficie descontada por cotizaciones validadas de un producto.
type ProductSurfaceSold struct {
	ProductID string
	Surface   decimal.Decimal
}

// AnalyticsRepository consultas de lectura para el dashboard. Read-only.
type AnalyticsRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	GetQuotationTotals(ctx context.Context) (QuotationTotals, error)
	// GetMonthlyCreations agrupa por mes las cotizaciones creadas en [from, to).
	GetMonthlyCreations(ctx context.Context, from, to time.Time) ([]MonthlyCount, error)
	CountByStatus(ctx context.Context) ([]LabelCount, error)
	CountByType(ctx context.Context) ([]LabelCount, error)
	ListLowStock(ctx context.Context, threshold decimal.Decimal, limit int) ([]LowStockProduct, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	// GetSurfaceSold suma la superficie de las líneas de cotizaciones validadas en [from, to).
	GetSurfaceSold(ctx context.Context, from, to time.Time) ([]ProductSurfaceSold, error)
}
