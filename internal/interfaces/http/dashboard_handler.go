package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Estoque-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del tenant.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_products, low_stock_count, total_stock_value,
// today_outgoing, monthly[6], low_stock_top[5], date_label).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), tenantFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
