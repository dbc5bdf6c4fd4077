package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/luxymarbre/devis-api/internal/application/analytics"
	"github.com/luxymarbre/devis-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve los contadores globales.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}

// GetStats devuelve los datos de gráficos de un año (?year=2025; por defecto el actual).
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext(), c.QueryInt("year", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(stats)
}
