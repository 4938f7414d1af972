package inventory

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; nada de lo escrito queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ProductLocker serializa las actualizaciones de stock de un mismo producto.
// unlock debe llamarse exactamente una vez.
type ProductLocker interface {
	Lock(ctx context.Context, tenantID, productID string) (unlock func(), err error)
}
