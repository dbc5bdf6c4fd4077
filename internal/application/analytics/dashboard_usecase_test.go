package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxymarbre/devis-api/internal/domain/repository"
)

type stubRepo struct {
	totals   repository.QuotationTotals
	monthly  []repository.MonthlyCount
	from, to time.Time
	failOn   string
	limit    int
	thresh   decimal.Decimal
}

func (s *stubRepo) fail(name string) error {
	if s.failOn == name {
		return errors.New("db caída")
	}
	return nil
}

func (s *stubRepo) CountProducts(context.Context) (int64, error) { return 7, s.fail("products") }
func (s *stubRepo) GetQuotationTotals(context.Context) (repository.QuotationTotals, error) {
	return s.totals, s.fail("totals")
}
func (s *stubRepo) GetMonthlyCreations(_ context.Context, from, to time.Time) ([]repository.MonthlyCount, error) {
	s.from, s.to = from, to
	return s.monthly, s.fail("monthly")
}
func (s *stubRepo) CountByStatus(context.Context) ([]repository.LabelCount, error) {
	return []repository.LabelCount{{Label: "pending", Count: 2}, {Label: "validated", Count: 3}}, nil
}
func (s *stubRepo) CountByType(context.Context) ([]repository.LabelCount, error) {
	return []repository.LabelCount{{Label: "client", Count: 5}}, nil
}
func (s *stubRepo) ListLowStock(_ context.Context, threshold decimal.Decimal, limit int) ([]repository.LowStockProduct, error) {
	s.thresh, s.limit = threshold, limit
	return []repository.LowStockProduct{{ProductID: "p1", Name: "Carrara", Unit: "M²", Stock: decimal.NewFromInt(3)}}, nil
}
func (s *stubRepo) CountOutOfStock(context.Context) (int64, error) { return 1, nil }
func (s *stubRepo) GetSurfaceSold(context.Context, time.Time, time.Time) ([]repository.ProductSurfaceSold, error) {
	return nil, nil
}

func TestGetSummary(t *testing.T) {
	repo := &stubRepo{totals: repository.QuotationTotals{
		Total: 5, Validated: 3, Pending: 2, ValidatedAmount: decimal.RequireFromString("1234.567"),
	}}
	uc := NewDashboardUseCase(repo, 10)

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7), out.TotalProducts)
	assert.Equal(t, int64(5), out.TotalQuotations)
	assert.Equal(t, int64(3), out.TotalValidated)
	assert.Equal(t, "1234.57", out.TotalValidatedAmount.StringFixed(2))
	assert.Equal(t, int64(1), out.OutOfStock)
}

func TestGetSummary_ErrorDeRepo(t *testing.T) {
	uc := NewDashboardUseCase(&stubRepo{failOn: "totals"}, 10)

	_, err := uc.GetSummary(context.Background())
	assert.ErrorContains(t, err, "totales de cotizaciones")
}

func TestGetStats_DoceMeses(t *testing.T) {
	repo := &stubRepo{monthly: []repository.MonthlyCount{{Month: 3, Count: 4}, {Month: 12, Count: 1}}}
	uc := NewDashboardUseCase(repo, 10)
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	out, err := uc.GetStats(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 2025, out.Year)
	require.Len(t, out.Monthly, 12)
	assert.Equal(t, "Jan", out.Monthly[0].Month)
	assert.Equal(t, int64(0), out.Monthly[0].Count)
	assert.Equal(t, "Mar", out.Monthly[2].Month)
	assert.Equal(t, int64(4), out.Monthly[2].Count)
	assert.Equal(t, "Déc", out.Monthly[11].Month)
	assert.Equal(t, int64(1), out.Monthly[11].Count)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), repo.to)
	assert.True(t, repo.thresh.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, dashboardLowStockLimit, repo.limit)
	assert.Len(t, out.ByStatus, 2)
	assert.Len(t, out.LowStock, 1)
}

func TestGetStats_AnioExplicito(t *testing.T) {
	repo := &stubRepo{}
	uc := NewDashboardUseCase(repo, 5)

	out, err := uc.GetStats(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, 2023, out.Year)
	assert.Equal(t, 2023, repo.from.Year())
}
