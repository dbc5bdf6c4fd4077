package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

const (
	replenishmentWindowDays = 90
	replenishmentMaxItems   = 200
)

// ReplenishmentUseCase genera la lista de reposición: productos bajo el umbral de stock,
// priorizados por la superficie vendida (cotizaciones validadas) en los últimos 90 días.
type ReplenishmentUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	threshold     decimal.Decimal
}

// NewReplenishmentUseCase construye el caso de uso con el umbral de stock bajo.
func NewReplenishmentUseCase(analyticsRepo repository.AnalyticsRepository, threshold int) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{analyticsRepo: analyticsRepo, threshold: decimal.NewFromInt(int64(threshold))}
}

// GenerateReplenishmentList devuelve las sugerencias ordenadas (Priority 1 = más urgente).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.analyticsRepo.ListLowStock(ctx, uc.threshold, replenishmentMaxItems)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	end := time.Now()
	start := end.AddDate(0, 0, -replenishmentWindowDays)
	sold, err := uc.analyticsRepo.GetSurfaceSold(ctx, start, end)
	if err != nil {
		return nil, err
	}
	soldByID := make(map[string]decimal.Decimal, len(sold))
	for _, s := range sold {
		soldByID[s.ProductID] = s.Surface
	}

	ideal := uc.threshold.Mul(decimal.NewFromFloat(1.5))
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, item := range low {
		qty := ideal.Sub(item.Stock)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         item.ProductID,
			ProductName:       item.Name,
			Unit:              item.Unit,
			CurrentStock:      item.Stock,
			Threshold:         uc.threshold,
			IdealStock:        ideal,
			SuggestedOrderQty: qty,
			SurfaceSold90Days: soldByID[item.ProductID],
		})
	}

	// Primero mayor superficie vendida, luego menor stock.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.SurfaceSold90Days.Equal(b.SurfaceSold90Days) {
			return a.SurfaceSold90Days.GreaterThan(b.SurfaceSold90Days)
		}
		return a.CurrentStock.LessThan(b.CurrentStock)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
