// Package inventory reúne las reglas puras del libro de movimientos y los agregados de stock.
package inventory

import (
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ApplyMovement calcula el stock resultante de un movimiento.
// No escribe nada: si el resultado sería negativo devuelve ErrInsufficientStock.
func ApplyMovement(current int64, direction entity.Direction, quantity int64) (int64, error) {
	if quantity <= 0 {
		return current, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if !direction.Valid() {
		return current, fmt.Errorf("%w: dirección %q", domain.ErrInvalidInput, direction)
	}
	next := current + quantity
	if direction == entity.DirectionOut {
		next = current - quantity
	}
	if next < 0 {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}

// Replay aplica una secuencia de movimientos desde initial.
// Se detiene en el primer movimiento rechazado y devuelve el stock previo a ese movimiento.
func Replay(initial int64, movements []entity.StockMovement) (int64, error) {
	stock := initial
	for i := range movements {
		next, err := ApplyMovement(stock, movements[i].Direction, movements[i].Quantity)
		if err != nil {
			return stock, fmt.Errorf("movimiento %d: %w", i, err)
		}
		stock = next
	}
	return stock, nil
}

// SuggestedReorder cantidad a pedir para llegar a 1.5 × mínimo (redondeado hacia arriba).
func SuggestedReorder(current, minimum int64) int64 {
	ideal := (minimum*3 + 1) / 2
	if qty := ideal - current; qty > 0 {
		return qty
	}
	return 0
}
