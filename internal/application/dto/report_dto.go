package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ABCItemDTO una fila de la curva ABC.
type ABCItemDTO struct {
	Rank          int             `json:"rank"`
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	StockValue    decimal.Decimal `json:"stock_value"`
	ValuePct      decimal.Decimal `json:"value_pct"`
	CumulativePct decimal.Decimal `json:"cumulative_pct"`
	Class         string          `json:"class"`
}

// ABCClassSummaryDTO totales por clase.
type ABCClassSummaryDTO struct {
	Class        string          `json:"class"`
	ProductCount int             `json:"product_count"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// LowStockItemDTO producto en alerta dentro de un reporte.
type LowStockItemDTO struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	CurrentStock int64  `json:"current_stock"`
	MinimumStock int64  `json:"minimum_stock"`
}

// InventoryReportDTO respuesta de GET /api/reports/inventory.
type InventoryReportDTO struct {
	TotalValue   decimal.Decimal      `json:"total_value"`
	ProductCount int                  `json:"product_count"`
	LowStock     []LowStockItemDTO    `json:"low_stock"`
	ABC          []ABCItemDTO         `json:"abc"`
	Classes      []ABCClassSummaryDTO `json:"classes"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

// ABCCSVRow fila exportada en abc.csv.
type ABCCSVRow struct {
	Rank          int    `csv:"rank"`
	SKU           string `csv:"sku"`
	ProductName   string `csv:"product_name"`
	StockValue    string `csv:"stock_value"`
	ValuePct      string `csv:"value_pct"`
	CumulativePct string `csv:"cumulative_pct"`
	Class         string `csv:"class"`
}
