package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts        int64           `json:"total_products"`
	TotalQuotations      int64           `json:"total_quotations"`
	TotalPending         int64           `json:"total_pending"`
	TotalValidated       int64           `json:"total_validated"`
	TotalRejected        int64           `json:"total_rejected"`
	TotalValidatedAmount decimal.Decimal `json:"total_validated_amount"`
	OutOfStock           int64           `json:"out_of_stock"`
}

// MonthlyCountDTO cotizaciones creadas en un mes.
type MonthlyCountDTO struct {
	Month string `json:"month"` // etiqueta corta en francés: Jan, Fév, …
	Count int64  `json:"count"`
}

// LabelCountDTO par etiqueta → cantidad.
type LabelCountDTO struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// LowStockDTO producto con stock bajo.
type LowStockDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
}

// DashboardStatsDTO respuesta de GET /api/dashboard/stats (gráficos).
type DashboardStatsDTO struct {
	Year       int               `json:"year"`
	Monthly    []MonthlyCountDTO `json:"monthly"`
	ByStatus   []LabelCountDTO   `json:"by_status"`
	ByType     []LabelCountDTO   `json:"by_type"`
	LowStock   []LowStockDTO     `json:"low_stock"`
	OutOfStock int64             `json:"out_of_stock"`
}
