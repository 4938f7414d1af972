package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado de productos.
type ProductFilter struct {
	Active     *bool
	CategoryID string
	Query      string // busca en nombre y SKU
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las lecturas y escrituras van acotadas por tenantID.
// Los Get devuelven (nil, nil) cuando el producto no existe en el tenant.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, tenantID, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error)
	// Update no toca CurrentStock ni CostPrice.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe stock y costo promedio en una sola sentencia.
	UpdateStock(ctx context.Context, tenantID, id string, stock int64, cost decimal.Decimal) error
	List(ctx context.Context, tenantID string, filter ProductFilter) ([]*entity.Product, error)
	ListAll(ctx context.Context, tenantID string) ([]*entity.Product, error)
	// Count cuenta con los mismos filtros que List, ignorando Limit y Offset.
	Count(ctx context.Context, tenantID string, filter ProductFilter) (int, error)
	Delete(ctx context.Context, tenantID, id string) error
}
