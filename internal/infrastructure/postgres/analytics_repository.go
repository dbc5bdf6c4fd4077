package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero y la reposición.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountProducts cuenta los productos del catálogo.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountProducts: %w", err)
	}
	return n, nil
}

// GetQuotationTotals devuelve los contadores por estado y el monto validado en una sola pasada.
func (r *AnalyticsRepo) GetQuotationTotals(ctx context.Context) (repository.QuotationTotals, error) {
	const query = `
	SELECT
	    count(*)                                                           AS total,
	    count(*) FILTER (WHERE status = 'validated')                       AS validated,
	    count(*) FILTER (WHERE status = 'rejected')                        AS rejected,
	    count(*) FILTER (WHERE status = 'pending')                         AS pending,
	    COALESCE(sum(total_amount) FILTER (WHERE status = 'validated'), 0) AS validated_amount
	FROM quotations`

	var t repository.QuotationTotals
	if err := r.q.QueryRow(ctx, query).Scan(&t.Total, &t.Validated, &t.Rejected, &t.Pending, &t.ValidatedAmount); err != nil {
		return repository.QuotationTotals{}, fmt.Errorf("analytics.GetQuotationTotals: %w", err)
	}
	return t, nil
}

// GetMonthlyCreations agrupa por mes de creación dentro de [from, to).
func (r *AnalyticsRepo) GetMonthlyCreations(ctx context.Context, from, to time.Time) ([]repository.MonthlyCount, error) {
	const query = `
	SELECT EXTRACT(MONTH FROM created_at)::int AS month, count(*) AS n
	FROM quotations
	WHERE created_at >= $1 AND created_at < $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyCreations: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlyCount
	for rows.Next() {
		var m repository.MonthlyCount
		if err := rows.Scan(&m.Month, &m.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyCreations scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CountByStatus cuenta cotizaciones por estado.
func (r *AnalyticsRepo) CountByStatus(ctx context.Context) ([]repository.LabelCount, error) {
	return r.labelCounts(ctx, "analytics.CountByStatus",
		`SELECT status, count(*) FROM quotations GROUP BY status ORDER BY status`)
}

// CountByType cuenta cotizaciones por tipo (client / supplier).
func (r *AnalyticsRepo) CountByType(ctx context.Context) ([]repository.LabelCount, error) {
	return r.labelCounts(ctx, "analytics.CountByType",
		`SELECT type, count(*) FROM quotations GROUP BY type ORDER BY type`)
}

func (r *AnalyticsRepo) labelCounts(ctx context.Context, op, query string) ([]repository.LabelCount, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []repository.LabelCount
	for rows.Next() {
		var lc repository.LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// ListLowStock lista productos con stock por debajo del umbral, los más críticos primero.
func (r *AnalyticsRepo) ListLowStock(ctx context.Context, threshold decimal.Decimal, limit int) ([]repository.LowStockProduct, error) {
	const query = `
	SELECT id, name, unit, stock
	FROM products
	WHERE stock < $1
	ORDER BY stock ASC, name ASC
	LIMIT $2`

	rows, err := r.q.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListLowStock: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockProduct
	for rows.Next() {
		var p repository.LowStockProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Unit, &p.Stock); err != nil {
			return nil, fmt.Errorf("analytics.ListLowStock scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountOutOfStock cuenta productos sin stock.
func (r *AnalyticsRepo) CountOutOfStock(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE stock <= 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountOutOfStock: %w", err)
	}
	return n, nil
}

// GetSurfaceSold suma por producto la superficie de cotizaciones cuyo stock se descontó en [from, to).
func (r *AnalyticsRepo) GetSurfaceSold(ctx context.Context, from, to time.Time) ([]repository.ProductSurfaceSold, error) {
	const query = `
	SELECT l.product_id, SUM(l.surface) AS surface
	FROM quotation_lines l
	JOIN quotations q ON q.id = l.quotation_id
	WHERE q.status = 'validated'
	  AND q.stock_debited_at >= $1
	  AND q.stock_debited_at <  $2
	GROUP BY l.product_id
	ORDER BY surface DESC`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSurfaceSold: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductSurfaceSold
	for rows.Next() {
		var s repository.ProductSurfaceSold
		if err := rows.Scan(&s.ProductID, &s.Surface); err != nil {
			return nil, fmt.Errorf("analytics.GetSurfaceSold scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
