package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de lectura sobre el store.
type AnalyticsRepo struct {
	c conn
}

// NewAnalyticsRepository construye el repo sobre el store.
func NewAnalyticsRepository(s *Store) *AnalyticsRepo {
	return &AnalyticsRepo{c: s.auto()}
}

func (r *AnalyticsRepo) MovementTotalsByMonth(_ context.Context, tenantID string, since time.Time, loc *time.Location) ([]repository.MonthlyMovementTotals, error) {
	if loc == nil {
		loc = time.UTC
	}
	var out []repository.MonthlyMovementTotals
	err := r.c.with(func(d *data) error {
		byMonth := make(map[string]*repository.MonthlyMovementTotals)
		for _, m := range d.movements {
			if m.TenantID != tenantID || m.CreatedAt.Before(since) {
				continue
			}
			month := m.CreatedAt.In(loc).Format("2006-01")
			acc, ok := byMonth[month]
			if !ok {
				acc = &repository.MonthlyMovementTotals{Month: month}
				byMonth[month] = acc
			}
			if m.Direction == entity.DirectionIn {
				acc.In += m.Quantity
			} else {
				acc.Out += m.Quantity
			}
		}
		for _, acc := range byMonth {
			out = append(out, *acc)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) CountMovements(_ context.Context, tenantID string, direction entity.Direction, from, to time.Time) (int, error) {
	n := 0
	err := r.c.with(func(d *data) error {
		for _, m := range d.movements {
			if m.TenantID == tenantID && m.Direction == direction &&
				!m.CreatedAt.Before(from) && m.CreatedAt.Before(to) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) CountUsers(_ context.Context, role string, onlyActive bool) (int, error) {
	n := 0
	err := r.c.with(func(d *data) error {
		for _, u := range d.users {
			if (role == "" || u.Role == role) && (!onlyActive || u.IsActive) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) CountProducts(_ context.Context) (int, error) {
	n := 0
	err := r.c.with(func(d *data) error {
		n = len(d.products)
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) CountLowStockProducts(_ context.Context) (int, error) {
	n := 0
	err := r.c.with(func(d *data) error {
		for _, p := range d.products {
			if p.Active && p.IsLowStock() {
				n++
			}
		}
		return nil
	})
	return n, err
}
