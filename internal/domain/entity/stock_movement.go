package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido de un movimiento.
type Direction string

const (
	DirectionIn  Direction = "in"  // entrada
	DirectionOut Direction = "out" // salida
)

// Valid indica si la dirección pertenece al conjunto cerrado in/out.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Reason motivo de un movimiento.
type Reason string

const (
	ReasonPurchase   Reason = "purchase"
	ReasonSale       Reason = "sale"
	ReasonAdjustment Reason = "adjustment"
	ReasonReturn     Reason = "return"
	ReasonDamage     Reason = "damage"
	ReasonTransfer   Reason = "transfer"
)

// Valid indica si el motivo es uno de los enumerados.
func (r Reason) Valid() bool {
	switch r {
	case ReasonPurchase, ReasonSale, ReasonAdjustment, ReasonReturn, ReasonDamage, ReasonTransfer:
		return true
	}
	return false
}

// StockMovement es un hecho histórico inmutable: no se actualiza ni se borra.
type StockMovement struct {
	ID        string
	TenantID  string
	ProductID string
	Direction Direction
	Quantity  int64 // siempre positivo; el signo lo da Direction
	Reason    Reason
	Notes     string
	Reference string
	UnitCost  *decimal.Decimal // solo entradas
	CreatedBy string
	CreatedAt time.Time
}

// Signed devuelve la cantidad con signo (+ entrada, - salida).
func (m *StockMovement) Signed() int64 {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}
