package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	c conn
}

// NewProductRepository construye el repo sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{c: s.auto()}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.c.with(func(d *data) error {
		if product.CurrentStock < 0 {
			return domain.ErrInsufficientStock
		}
		if _, ok := d.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, p := range d.products {
			if p.TenantID == product.TenantID && p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		d.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.c.with(func(d *data) error {
		if p, ok := d.products[id]; ok && p.TenantID == tenantID {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate: en memoria el candado ya lo da la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *ProductRepo) GetBySKU(_ context.Context, tenantID, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.c.with(func(d *data) error {
		for _, p := range d.products {
			if p.TenantID == tenantID && p.SKU == sku {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.c.with(func(d *data) error {
		cur, ok := d.products[product.ID]
		if !ok || cur.TenantID != product.TenantID {
			return domain.ErrNotFound
		}
		for _, p := range d.products {
			if p.ID != product.ID && p.TenantID == product.TenantID && p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		next := *product
		next.CurrentStock = cur.CurrentStock
		next.CostPrice = cur.CostPrice
		next.CreatedAt = cur.CreatedAt
		d.products[product.ID] = next
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, tenantID, id string, stock int64, cost decimal.Decimal) error {
	return r.c.with(func(d *data) error {
		p, ok := d.products[id]
		if !ok || p.TenantID != tenantID {
			return domain.ErrNotFound
		}
		// equivalente al CHECK (current_stock >= 0)
		if stock < 0 {
			return domain.ErrInsufficientStock
		}
		p.CurrentStock = stock
		p.CostPrice = cost
		p.UpdatedAt = time.Now()
		d.products[id] = p
		return nil
	})
}

// productMatches aplica los filtros de ProductFilter; Limit y Offset no intervienen.
func productMatches(p entity.Product, tenantID string, filter repository.ProductFilter) bool {
	if p.TenantID != tenantID {
		return false
	}
	if filter.Active != nil && p.Active != *filter.Active {
		return false
	}
	if filter.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != filter.CategoryID) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	return q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q)
}

func (r *ProductRepo) List(_ context.Context, tenantID string, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.c.with(func(d *data) error {
		list := make([]entity.Product, 0)
		for _, p := range d.products {
			if productMatches(p, tenantID, filter) {
				list = append(list, p)
			}
		}
		sortProducts(list)
		for _, p := range page(list, filter.Limit, filter.Offset) {
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListAll(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	return r.List(ctx, tenantID, repository.ProductFilter{})
}

func (r *ProductRepo) Count(_ context.Context, tenantID string, filter repository.ProductFilter) (int, error) {
	n := 0
	err := r.c.with(func(d *data) error {
		for _, p := range d.products {
			if productMatches(p, tenantID, filter) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *ProductRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.c.with(func(d *data) error {
		p, ok := d.products[id]
		if !ok || p.TenantID != tenantID {
			return domain.ErrNotFound
		}
		for _, m := range d.movements {
			if m.ProductID == id {
				return fmt.Errorf("%w: el producto tiene movimientos registrados", domain.ErrConflict)
			}
		}
		delete(d.products, id)
		return nil
	})
}

// más reciente primero, como ORDER BY created_at DESC, id
func sortProducts(list []entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
