package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Costo y stock se manejan vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	now          func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo, now: time.Now}
}

// Create crea un producto con su stock inicial. El SKU es único por tenant.
func (uc *ProductUseCase) Create(ctx context.Context, tenant domain.Tenant, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.SKU == "" || in.Name == "":
		return nil, fmt.Errorf("%w: sku y name son requeridos", domain.ErrInvalidInput)
	case in.CostPrice.IsNegative() || in.SalePrice.IsNegative():
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	case in.InitialStock < 0 || in.MinimumStock < 0:
		return nil, fmt.Errorf("%w: initial_stock y minimum_stock deben ser >= 0", domain.ErrInvalidInput)
	}
	if err := uc.checkRefs(ctx, tenant.ID, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetBySKU(ctx, tenant.ID, in.SKU)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, in.SKU)
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		TenantID:     tenant.ID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		CategoryID:   emptyToNil(in.CategoryID),
		SupplierID:   emptyToNil(in.SupplierID),
		CostPrice:    in.CostPrice,
		SalePrice:    in.SalePrice,
		CurrentStock: in.InitialStock,
		MinimumStock: in.MinimumStock,
		ImageURL:     in.ImageURL,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, domain.WrapPersistence(err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del tenant.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenant domain.Tenant, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar costo ni stock (se manejan vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, tenant domain.Tenant, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, fmt.Errorf("%w: sku no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.SKU = sku
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: sale_price no puede ser negativo", domain.ErrInvalidInput)
		}
		product.SalePrice = *in.SalePrice
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, fmt.Errorf("%w: minimum_stock debe ser >= 0", domain.ErrInvalidInput)
		}
		product.MinimumStock = *in.MinimumStock
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	// "" desvincula la categoría o el proveedor
	if in.CategoryID != nil {
		product.CategoryID = emptyToNil(in.CategoryID)
	}
	if in.SupplierID != nil {
		product.SupplierID = emptyToNil(in.SupplierID)
	}
	if err := uc.checkRefs(ctx, tenant.ID, product.CategoryID, product.SupplierID); err != nil {
		return nil, err
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, domain.WrapPersistence(err)
	}
	return toProductResponse(product), nil
}

// List lista productos del tenant con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, tenant domain.Tenant, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, tenant.ID, filter)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	total, err := uc.repo.Count(ctx, tenant.ID, filter)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Delete elimina un producto sin movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, tenant domain.Tenant, id string) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	return domain.WrapPersistence(uc.repo.Delete(ctx, tenant.ID, id))
}

func (uc *ProductUseCase) get(ctx context.Context, tenant domain.Tenant, id string) (*entity.Product, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, tenant.ID, id)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// checkRefs categoría y proveedor, si vienen, deben existir en el mismo tenant.
func (uc *ProductUseCase) checkRefs(ctx context.Context, tenantID string, categoryID, supplierID *string) error {
	if id := emptyToNil(categoryID); id != nil {
		c, err := uc.categoryRepo.GetByID(ctx, tenantID, *id)
		if err != nil {
			return domain.WrapPersistence(err)
		}
		if c == nil {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, *id)
		}
	}
	if id := emptyToNil(supplierID); id != nil {
		s, err := uc.supplierRepo.GetByID(ctx, tenantID, *id)
		if err != nil {
			return domain.WrapPersistence(err)
		}
		if s == nil {
			return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, *id)
		}
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
		LowStock:     p.IsLowStock(),
		ImageURL:     p.ImageURL,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

