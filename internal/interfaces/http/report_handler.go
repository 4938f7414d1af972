package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
)

// ReportHandler reportes de inventario (capacidad reports).
type ReportHandler struct {
	reports       *analytics.ReportUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *analytics.ReportUseCase, replenishment *inventory.ReplenishmentUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, replenishment: replenishment}
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Description  Valor total, productos en o bajo el mínimo y curva ABC (A ≤ 80%, B ≤ 95%).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.reports.InventoryReport(c.Context(), tenantFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de reposición
// @Description  Productos activos con stock <= mínimo, con pedido sugerido y prioridad.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertDTO
// @Router       /api/reports/alerts [get]
func (h *ReportHandler) Alerts(c *fiber.Ctx) error {
	list, err := h.replenishment.LowStockAlerts(c.Context(), tenantFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":  len(list),
		"alerts": list,
	})
}

// ABCCSV godoc
// @Summary      Curva ABC en CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/reports/abc.csv [get]
func (h *ReportHandler) ABCCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.reports.ExportCSV(c.Context(), tenantFrom(c), &buf); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="curva-abc.csv"`)
	return c.Send(buf.Bytes())
}

// ABCPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/abc.pdf [get]
func (h *ReportHandler) ABCPDF(c *fiber.Ctx) error {
	pdf, err := h.reports.ExportPDF(c.Context(), tenantFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="relatorio-estoque.pdf"`)
	return c.Send(pdf)
}
