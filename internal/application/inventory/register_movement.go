package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso ApplyMovement.
// Acepta también los nombres del formulario original (entrada/saida, compra/venda...).
func (uc *LedgerUseCase) RegisterMovementFromRequest(ctx context.Context, tenant domain.Tenant, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInput{
		ProductID: strings.TrimSpace(in.ProductID),
		Direction: ParseDirection(in.Direction),
		Quantity:  in.Quantity,
		Reason:    ParseReason(in.Reason),
		Notes:     strings.TrimSpace(in.Notes),
		Reference: strings.TrimSpace(in.Reference),
		UnitCost:  in.UnitCost,
	}
	return uc.ApplyMovement(ctx, tenant, input)
}

// ParseDirection normaliza la dirección. Valores desconocidos quedan inválidos.
func ParseDirection(s string) entity.Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "entrada":
		return entity.DirectionIn
	case "out", "saida", "salida":
		return entity.DirectionOut
	}
	return entity.Direction(s)
}

var reasonAliases = map[string]entity.Reason{
	"compra":        entity.ReasonPurchase,
	"venda":         entity.ReasonSale,
	"venta":         entity.ReasonSale,
	"ajuste":        entity.ReasonAdjustment,
	"devolucao":     entity.ReasonReturn,
	"devolucion":    entity.ReasonReturn,
	"avaria":        entity.ReasonDamage,
	"transferencia": entity.ReasonTransfer,
}

// ParseReason normaliza el motivo. Vacío se toma como ajuste.
func ParseReason(s string) entity.Reason {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return entity.ReasonAdjustment
	}
	if r, ok := reasonAliases[s]; ok {
		return r
	}
	return entity.Reason(s)
}
