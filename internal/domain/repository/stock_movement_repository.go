package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	ProductID string
	Direction entity.Direction
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository libro de movimientos: solo inserta y consulta.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.StockMovement, error)
	List(ctx context.Context, tenantID string, filter MovementFilter) ([]*entity.StockMovement, error)
}
