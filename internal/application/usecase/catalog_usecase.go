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

// CategoryUseCase CRUD de categorías del tenant.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	now  func() time.Time
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, now: time.Now}
}

func (uc *CategoryUseCase) Create(ctx context.Context, tenant domain.Tenant, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := uc.now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		TenantID:    tenant.ID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, domain.WrapPersistence(err)
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, tenant domain.Tenant, id string) (*dto.CategoryResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, tenant.ID, id)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) List(ctx context.Context, tenant domain.Tenant) ([]dto.CategoryResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, tenant.ID)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, tenant domain.Tenant, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	c, err := uc.repo.GetByID(ctx, tenant.ID, id)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = name
	c.Description = strings.TrimSpace(in.Description)
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, domain.WrapPersistence(err)
	}
	return toCategoryResponse(c), nil
}

// Delete elimina la categoría; sus productos quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, tenant domain.Tenant, id string) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	return domain.WrapPersistence(uc.repo.Delete(ctx, tenant.ID, id))
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SupplierUseCase CRUD de proveedores del tenant.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	now  func() time.Time
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, now: time.Now}
}

func normalizeSupplier(in *dto.SupplierRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *SupplierUseCase) Create(ctx context.Context, tenant domain.Tenant, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if err := normalizeSupplier(&in); err != nil {
		return nil, err
	}
	now := uc.now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		TenantID:  tenant.ID,
		Name:      in.Name,
		TaxID:     strings.TrimSpace(in.TaxID),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     in.Email,
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, domain.WrapPersistence(err)
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Get(ctx context.Context, tenant domain.Tenant, id string) (*dto.SupplierResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	s, err := uc.repo.GetByID(ctx, tenant.ID, id)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, tenant domain.Tenant) ([]dto.SupplierResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, tenant.ID)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, tenant domain.Tenant, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if err := normalizeSupplier(&in); err != nil {
		return nil, err
	}
	s, err := uc.repo.GetByID(ctx, tenant.ID, id)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Name = in.Name
	s.TaxID = strings.TrimSpace(in.TaxID)
	s.Phone = strings.TrimSpace(in.Phone)
	s.Email = in.Email
	s.Address = strings.TrimSpace(in.Address)
	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, domain.WrapPersistence(err)
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, tenant domain.Tenant, id string) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	return domain.WrapPersistence(uc.repo.Delete(ctx, tenant.ID, id))
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
