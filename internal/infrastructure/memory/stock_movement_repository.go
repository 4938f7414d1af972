package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria (solo inserta).
type StockMovementRepo struct {
	c conn
}

// NewStockMovementRepository construye el repo sobre el store.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{c: s.auto()}
}

func (r *StockMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	return r.c.with(func(d *data) error {
		p, ok := d.products[movement.ProductID]
		if !ok || p.TenantID != movement.TenantID {
			return domain.ErrNotFound
		}
		d.movements = append(d.movements, *movement)
		return nil
	})
}

func (r *StockMovementRepo) GetByID(_ context.Context, tenantID, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.c.with(func(d *data) error {
		for _, m := range d.movements {
			if m.ID == id && m.TenantID == tenantID {
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) List(_ context.Context, tenantID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.c.with(func(d *data) error {
		list := make([]entity.StockMovement, 0)
		for _, m := range d.movements {
			if m.TenantID != tenantID {
				continue
			}
			if filter.ProductID != "" && m.ProductID != filter.ProductID {
				continue
			}
			if filter.Direction != "" && m.Direction != filter.Direction {
				continue
			}
			if filter.From != nil && m.CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !m.CreatedAt.Before(*filter.To) {
				continue
			}
			list = append(list, m)
		}
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
		for _, m := range page(list, filter.Limit, filter.Offset) {
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}
