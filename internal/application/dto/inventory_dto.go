package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Direction string           `json:"direction"` // in | out
	Quantity  int64            `json:"quantity"`
	Reason    string           `json:"reason"` // purchase, sale, adjustment, return, damage, transfer
	Notes     string           `json:"notes,omitempty"`
	Reference string           `json:"reference,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"` // solo entradas; recalcula el costo promedio
}

// MovementResponse movimiento registrado con el stock antes y después.
type MovementResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Direction     string           `json:"direction"`
	Quantity      int64            `json:"quantity"`
	Reason        string           `json:"reason"`
	Notes         string           `json:"notes,omitempty"`
	Reference     string           `json:"reference,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	PreviousStock *int64           `json:"previous_stock,omitempty"`
	NewStock      *int64           `json:"new_stock,omitempty"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}

// MovementListResponse historial paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LowStockAlertDTO producto en o bajo su mínimo, con la reposición sugerida.
type LowStockAlertDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int64           `json:"current_stock"`
	MinimumStock       int64           `json:"minimum_stock"`
	Deficit            int64           `json:"deficit"`             // MinimumStock - CurrentStock (0 si está justo en el mínimo)
	SuggestedOrderQty  int64           `json:"suggested_order_qty"` // hasta 1.5 × MinimumStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
