package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de alertas de stock bajo con la reposición sugerida.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// LowStockAlerts devuelve los productos activos con stock <= mínimo.
// Orden: mayor déficit primero, luego mayor costo estimado del pedido, luego nombre.
func (uc *ReplenishmentUseCase) LowStockAlerts(ctx context.Context, tenant domain.Tenant) ([]dto.LowStockAlertDTO, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll(ctx, tenant.ID)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}

	alerts := make([]dto.LowStockAlertDTO, 0)
	for _, p := range products {
		if !p.Active || !p.IsLowStock() {
			continue
		}
		suggested := inventory.SuggestedReorder(p.CurrentStock, p.MinimumStock)
		alerts = append(alerts, dto.LowStockAlertDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			CurrentStock:       p.CurrentStock,
			MinimumStock:       p.MinimumStock,
			Deficit:            p.MinimumStock - p.CurrentStock,
			SuggestedOrderQty:  suggested,
			UnitCost:           p.CostPrice,
			EstimatedOrderCost: decimal.NewFromInt(suggested).Mul(p.CostPrice).Round(2),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Deficit != b.Deficit {
			return a.Deficit > b.Deficit
		}
		if !a.EstimatedOrderCost.Equal(b.EstimatedOrderCost) {
			return a.EstimatedOrderCost.GreaterThan(b.EstimatedOrderCost)
		}
		return a.ProductName < b.ProductName
	})

	// 1 = más urgente
	for i := range alerts {
		alerts[i].Priority = i + 1
	}
	return alerts, nil
}
