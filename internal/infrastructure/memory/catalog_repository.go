package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	c conn
}

// NewCategoryRepository construye el repo sobre el store.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{c: s.auto()}
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	return r.c.with(func(d *data) error {
		for _, c := range d.categories {
			if c.TenantID == category.TenantID && strings.EqualFold(c.Name, category.Name) {
				return domain.ErrDuplicate
			}
		}
		d.categories[category.ID] = *category
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.c.with(func(d *data) error {
		if c, ok := d.categories[id]; ok && c.TenantID == tenantID {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(_ context.Context, tenantID string) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0)
	err := r.c.with(func(d *data) error {
		for _, c := range d.categories {
			if c.TenantID == tenantID {
				out = append(out, &c)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	return r.c.with(func(d *data) error {
		cur, ok := d.categories[category.ID]
		if !ok || cur.TenantID != category.TenantID {
			return domain.ErrNotFound
		}
		for _, c := range d.categories {
			if c.ID != category.ID && c.TenantID == category.TenantID && strings.EqualFold(c.Name, category.Name) {
				return domain.ErrDuplicate
			}
		}
		d.categories[category.ID] = *category
		return nil
	})
}

// Delete deja sin categoría a los productos que la usaban (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.c.with(func(d *data) error {
		c, ok := d.categories[id]
		if !ok || c.TenantID != tenantID {
			return domain.ErrNotFound
		}
		delete(d.categories, id)
		for pid, p := range d.products {
			if p.CategoryID != nil && *p.CategoryID == id {
				p.CategoryID = nil
				d.products[pid] = p
			}
		}
		return nil
	})
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	c conn
}

// NewSupplierRepository construye el repo sobre el store.
func NewSupplierRepository(s *Store) *SupplierRepo {
	return &SupplierRepo{c: s.auto()}
}

func (r *SupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	return r.c.with(func(d *data) error {
		d.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.c.with(func(d *data) error {
		if s, ok := d.suppliers[id]; ok && s.TenantID == tenantID {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) List(_ context.Context, tenantID string) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0)
	err := r.c.with(func(d *data) error {
		for _, s := range d.suppliers {
			if s.TenantID == tenantID {
				out = append(out, &s)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, supplier *entity.Supplier) error {
	return r.c.with(func(d *data) error {
		cur, ok := d.suppliers[supplier.ID]
		if !ok || cur.TenantID != supplier.TenantID {
			return domain.ErrNotFound
		}
		d.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *SupplierRepo) Delete(_ context.Context, tenantID, id string) error {
	return r.c.with(func(d *data) error {
		s, ok := d.suppliers[id]
		if !ok || s.TenantID != tenantID {
			return domain.ErrNotFound
		}
		delete(d.suppliers, id)
		for pid, p := range d.products {
			if p.SupplierID != nil && *p.SupplierID == id {
				p.SupplierID = nil
				d.products[pid] = p
			}
		}
		return nil
	})
}
