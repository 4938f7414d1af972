package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

type sampleProduct struct {
	sku, name, description string
	cost, sale             int64
	stock, minimum         int64
	category, supplier     int // índices en sampleCategories / sampleSuppliers
}

var (
	sampleCategories = []entity.Category{
		{Name: "Eletrônicos", Description: "Produtos eletrônicos e tecnologia"},
		{Name: "Alimentos", Description: "Alimentos e bebidas"},
		{Name: "Limpeza", Description: "Produtos de limpeza"},
		{Name: "Papelaria", Description: "Materiais de escritório"},
	}
	sampleSuppliers = []entity.Supplier{
		{Name: "Tech Supply LTDA", TaxID: "12.345.678/0001-90", Phone: "(11) 3456-7890",
			Email: "contato@techsupply.com", Address: "Rua das Flores, 123 - São Paulo, SP"},
		{Name: "Distribuidora Alimentos", TaxID: "98.765.432/0001-10", Phone: "(21) 2345-6789",
			Email: "vendas@distalimentos.com", Address: "Av. Principal, 456 - Rio de Janeiro, RJ"},
	}
	sampleProducts = []sampleProduct{
		{"CEL-001", "Smartphone Galaxy", "Smartphone de última geração com 128GB", 800, 1200, 15, 5, 0, 0},
		{"NOTE-001", "Notebook Dell", "Notebook Dell Inspiron 15, i5, 8GB RAM", 2500, 3500, 8, 3, 0, 0},
		{"ARR-001", "Arroz Tio João 5kg", "Arroz tipo 1 pacote de 5kg", 15, 25, 3, 10, 1, 1},
		{"CAF-001", "Café Pilão 500g", "Café torrado e moído tradicional", 8, 12, 5, 15, 1, 1},
	}
)

// SetupUseCase carga datos de ejemplo en una cuenta nueva.
type SetupUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewSetupUseCase construye el caso de uso.
func NewSetupUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	log zerolog.Logger,
) *SetupUseCase {
	return &SetupUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		log:          log,
		now:          time.Now,
	}
}

// SeedSampleData crea categorías, proveedores y productos de ejemplo solo si el tenant
// todavía no tiene productos. Las categorías que ya existan por nombre se reutilizan.
func (uc *SetupUseCase) SeedSampleData(ctx context.Context, tenant domain.Tenant) (*dto.SetupResult, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	n, err := uc.productRepo.Count(ctx, tenant.ID, repository.ProductFilter{})
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if n > 0 {
		return &dto.SetupResult{Seeded: false}, nil
	}

	res := &dto.SetupResult{Seeded: true}
	now := uc.now()

	existing, err := uc.categoryRepo.List(ctx, tenant.ID)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c.ID
	}
	categoryIDs := make([]string, len(sampleCategories))
	for i, c := range sampleCategories {
		if id, ok := byName[strings.ToLower(c.Name)]; ok {
			categoryIDs[i] = id
			continue
		}
		c.ID = uuid.New().String()
		c.TenantID = tenant.ID
		c.CreatedAt, c.UpdatedAt = now, now
		if err := uc.categoryRepo.Create(ctx, &c); err != nil {
			return nil, domain.WrapPersistence(err)
		}
		categoryIDs[i] = c.ID
		res.Categories++
	}

	supplierIDs := make([]string, len(sampleSuppliers))
	for i, s := range sampleSuppliers {
		s.ID = uuid.New().String()
		s.TenantID = tenant.ID
		s.CreatedAt, s.UpdatedAt = now, now
		if err := uc.supplierRepo.Create(ctx, &s); err != nil {
			return nil, domain.WrapPersistence(err)
		}
		supplierIDs[i] = s.ID
		res.Suppliers++
	}

	for _, sp := range sampleProducts {
		categoryID := categoryIDs[sp.category]
		supplierID := supplierIDs[sp.supplier]
		p := &entity.Product{
			ID:           uuid.New().String(),
			TenantID:     tenant.ID,
			SKU:          sp.sku,
			Name:         sp.name,
			Description:  sp.description,
			CategoryID:   &categoryID,
			SupplierID:   &supplierID,
			CostPrice:    decimal.NewFromInt(sp.cost),
			SalePrice:    decimal.NewFromInt(sp.sale),
			CurrentStock: sp.stock,
			MinimumStock: sp.minimum,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.productRepo.Create(ctx, p); err != nil {
			return nil, domain.WrapPersistence(err)
		}
		res.Products++
	}

	uc.log.Info().Str("tenant_id", tenant.ID).Int("products", res.Products).Msg("datos de ejemplo cargados")
	return res, nil
}
