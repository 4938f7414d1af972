package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de un tenant.
// CostPrice es promedio ponderado actualizado por entradas con costo; CurrentStock solo cambia vía movimientos.
type Product struct {
	ID           string
	TenantID     string
	SKU          string // único por tenant
	Name         string
	Description  string
	CategoryID   *string
	SupplierID   *string
	CostPrice    decimal.Decimal
	SalePrice    decimal.Decimal
	CurrentStock int64 // nunca negativo
	MinimumStock int64
	ImageURL     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockValue es CurrentStock × SalePrice.
func (p *Product) StockValue() decimal.Decimal {
	return decimal.NewFromInt(p.CurrentStock).Mul(p.SalePrice)
}

// IsLowStock incluye el límite: stock igual al mínimo cuenta como alerta.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinimumStock
}
