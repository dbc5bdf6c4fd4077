// Package analytics contiene los casos de uso del tablero: contadores globales de catálogo
// y cotizaciones, serie mensual de creaciones y alertas de stock.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

const dashboardLowStockLimit = 10 // productos en el widget de stock bajo

var monthLabels = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Juin",
	"Juil", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// DashboardUseCase arma el resumen y las estadísticas del tablero.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	lowStockThreshold decimal.Decimal
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso. threshold es el stock por debajo del cual un producto se considera bajo.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, threshold int) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo:     analyticsRepo,
		lowStockThreshold: decimal.NewFromInt(int64(threshold)),
		now:               time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres consultas en paralelo:
//  1. CountProducts
//  2. GetQuotationTotals
//  3. CountOutOfStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var (
		products   int64
		totals     repository.QuotationTotals
		outOfStock int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountProducts(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		products = n
		return nil
	})
	g.Go(func() error {
		t, err := uc.analyticsRepo.GetQuotationTotals(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: totales de cotizaciones: %w", err)
		}
		totals = t
		return nil
	})
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountOutOfStock(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: sin stock: %w", err)
		}
		outOfStock = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:        products,
		TotalQuotations:      totals.Total,
		TotalPending:         totals.Pending,
		TotalValidated:       totals.Validated,
		TotalRejected:        totals.Rejected,
		TotalValidatedAmount: totals.ValidatedAmount.Round(2),
		OutOfStock:           outOfStock,
	}, nil
}

// GetStats devuelve los datos de gráficos del año indicado (0 = año en curso).
// Monthly siempre trae los 12 meses, con cero donde no hubo creaciones.
func (uc *DashboardUseCase) GetStats(ctx context.Context, year int) (*dto.DashboardStatsDTO, error) {
	now := uc.now()
	if year <= 0 {
		year = now.Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(1, 0, 0)

	var (
		monthly    []repository.MonthlyCount
		byStatus   []repository.LabelCount
		byType     []repository.LabelCount
		lowStock   []repository.LowStockProduct
		outOfStock int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthly, err = uc.analyticsRepo.GetMonthlyCreations(gctx, from, to)
		return wrap("serie mensual", err)
	})
	g.Go(func() (err error) {
		byStatus, err = uc.analyticsRepo.CountByStatus(gctx)
		return wrap("por estado", err)
	})
	g.Go(func() (err error) {
		byType, err = uc.analyticsRepo.CountByType(gctx)
		return wrap("por tipo", err)
	})
	g.Go(func() (err error) {
		lowStock, err = uc.analyticsRepo.ListLowStock(gctx, uc.lowStockThreshold, dashboardLowStockLimit)
		return wrap("stock bajo", err)
	})
	g.Go(func() (err error) {
		outOfStock, err = uc.analyticsRepo.CountOutOfStock(gctx)
		return wrap("sin stock", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardStatsDTO{
		Year:       year,
		Monthly:    fillMonths(monthly),
		ByStatus:   toLabelCounts(byStatus),
		ByType:     toLabelCounts(byType),
		LowStock:   toLowStock(lowStock),
		OutOfStock: outOfStock,
	}, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}

func fillMonths(rows []repository.MonthlyCount) []dto.MonthlyCountDTO {
	out := make([]dto.MonthlyCountDTO, 12)
	for i := range out {
		out[i].Month = monthLabels[i]
	}
	for _, r := range rows {
		if r.Month >= 1 && r.Month <= 12 {
			out[r.Month-1].Count += r.Count
		}
	}
	return out
}

func toLabelCounts(rows []repository.LabelCount) []dto.LabelCountDTO {
	out := make([]dto.LabelCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LabelCountDTO{Label: r.Label, Count: r.Count})
	}
	return out
}

func toLowStock(rows []repository.LowStockProduct) []dto.LowStockDTO {
	out := make([]dto.LowStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockDTO{ProductID: r.ProductID, Name: r.Name, Unit: r.Unit, Stock: r.Stock})
	}
	return out
}
