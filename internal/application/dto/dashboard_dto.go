package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts   int             `json:"total_products"`
	LowStockCount   int             `json:"low_stock_count"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	TodayOutgoing   int             `json:"today_outgoing"` // movimientos de salida de hoy

	// Serie de los últimos 6 meses, del más antiguo al actual (meses sin movimientos en 0)
	Monthly []MonthlyMovementDTO `json:"monthly"`

	// Top 5 en alerta, mayor déficit primero
	LowStockTop []LowStockItemDTO `json:"low_stock_top"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// MonthlyMovementDTO entradas y salidas de un mes.
type MonthlyMovementDTO struct {
	Month string `json:"month"` // YYYY-MM
	Label string `json:"label"` // ej: "Oct"
	In    int64  `json:"in"`
	Out   int64  `json:"out"`
}

// AdminStatsDTO respuesta de GET /api/admin/stats.
type AdminStatsDTO struct {
	TotalClients     int `json:"total_clients"`
	ActiveClients    int `json:"active_clients"`
	TotalProducts    int `json:"total_products"`
	LowStockProducts int `json:"low_stock_products"`
}
