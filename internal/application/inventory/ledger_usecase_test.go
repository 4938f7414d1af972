package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testTenant = domain.NewTenant("tenant-1", domain.RoleClient)

type ledgerFixture struct {
	store    *memory.Store
	products *memory.ProductRepo
	movs     *memory.StockMovementRepo
	uc       *inventory.LedgerUseCase
}

// wrap permite envolver el TxRunner del store (nil = store directo).
func newLedgerFixture(t *testing.T, wrap func(*memory.Store) inventory.TxRunner) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	var runner inventory.TxRunner = store
	if wrap != nil {
		runner = wrap(store)
	}
	f := &ledgerFixture{
		store:    store,
		products: memory.NewProductRepository(store),
		movs:     memory.NewStockMovementRepository(store),
	}
	f.uc = inventory.NewLedgerUseCase(runner, inventory.NewKeyedLocker(time.Second), f.movs, zerolog.Nop())
	return f
}

func (f *ledgerFixture) seedProduct(t *testing.T, id string, stock int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID:           id,
		TenantID:     testTenant.ID,
		SKU:          "SKU-" + id,
		Name:         "Producto " + id,
		CostPrice:    decimal.NewFromInt(10),
		SalePrice:    decimal.NewFromInt(20),
		CurrentStock: stock,
		MinimumStock: 1,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

func (f *ledgerFixture) stock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), testTenant.ID, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *ledgerFixture) movementCount(t *testing.T) int {
	t.Helper()
	list, err := f.movs.List(context.Background(), testTenant.ID, repository.MovementFilter{})
	require.NoError(t, err)
	return len(list)
}

func out(productID string, qty int64) inventory.MovementInput {
	return inventory.MovementInput{
		ProductID: productID,
		Direction: entity.DirectionOut,
		Quantity:  qty,
		Reason:    entity.ReasonSale,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaSumaStock(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 10)

	res, err := f.uc.ApplyMovement(context.Background(), testTenant, inventory.MovementInput{
		ProductID: "p1",
		Direction: entity.DirectionIn,
		Quantity:  5,
		Reason:    entity.ReasonPurchase,
		Reference: "NF-123",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), *res.PreviousStock)
	assert.Equal(t, int64(15), *res.NewStock)
	assert.Equal(t, testTenant.UserID, res.CreatedBy)
	assert.Equal(t, int64(15), f.stock(t, "p1"))
	assert.Equal(t, 1, f.movementCount(t))
}

func TestApplyMovement_EntradaConCostoRecalculaPromedio(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 10) // costo 10

	cost := decimal.NewFromInt(40)
	_, err := f.uc.ApplyMovement(context.Background(), testTenant, inventory.MovementInput{
		ProductID: "p1", Direction: entity.DirectionIn, Quantity: 10,
		Reason: entity.ReasonPurchase, UnitCost: &cost,
	})
	require.NoError(t, err)

	p, err := f.products.GetByID(context.Background(), testTenant.ID, "p1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(p.CostPrice), "costo promedio: %s", p.CostPrice)
}

func TestApplyMovement_SalidaInsuficienteNoEscribe(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 3)

	_, err := f.uc.ApplyMovement(context.Background(), testTenant, out("p1", 4))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), f.stock(t, "p1"), "el stock no debe cambiar")
	assert.Equal(t, 0, f.movementCount(t), "no debe registrarse el movimiento")
}

func TestApplyMovement_ValidacionAntesDeEscribir(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 3)

	cases := []inventory.MovementInput{
		{ProductID: "p1", Direction: entity.DirectionOut, Quantity: 0, Reason: entity.ReasonSale},
		{ProductID: "p1", Direction: entity.DirectionOut, Quantity: -1, Reason: entity.ReasonSale},
		{ProductID: "p1", Direction: "up", Quantity: 1, Reason: entity.ReasonSale},
		{ProductID: "p1", Direction: entity.DirectionIn, Quantity: 1, Reason: "gift"},
		{ProductID: "", Direction: entity.DirectionIn, Quantity: 1, Reason: entity.ReasonPurchase},
	}
	for _, in := range cases {
		_, err := f.uc.ApplyMovement(context.Background(), testTenant, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
	assert.Equal(t, 0, f.movementCount(t))
}

func TestApplyMovement_ProductoDeOtroTenant(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 3)

	other := domain.NewTenant("tenant-2", domain.RoleClient)
	_, err := f.uc.ApplyMovement(context.Background(), other, out("p1", 1))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(3), f.stock(t, "p1"))
}

func TestApplyMovement_SinTenant(t *testing.T) {
	f := newLedgerFixture(t, nil)
	_, err := f.uc.ApplyMovement(context.Background(), domain.Tenant{}, out("p1", 1))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// stockWriteFailRunner hace fallar la segunda escritura (stock) dentro de la tx.
type stockWriteFailRunner struct {
	inner inventory.TxRunner
}

type failingStockRepo struct {
	repository.ProductRepository
}

func (failingStockRepo) UpdateStock(context.Context, string, string, int64, decimal.Decimal) error {
	return errors.New("conexión perdida")
}

func (r stockWriteFailRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inner.Run(ctx, func(m repository.StockMovementRepository, p repository.ProductRepository) error {
		return fn(m, failingStockRepo{p})
	})
}

func TestApplyMovement_FalloEnStockRevierteMovimiento(t *testing.T) {
	f := newLedgerFixture(t, func(s *memory.Store) inventory.TxRunner {
		return stockWriteFailRunner{inner: s}
	})
	f.seedProduct(t, "p1", 10)

	_, err := f.uc.ApplyMovement(context.Background(), testTenant, out("p1", 2))

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, int64(10), f.stock(t, "p1"))
	assert.Equal(t, 0, f.movementCount(t), "el movimiento debe revertirse junto con el stock")
}

// Dos salidas simultáneas del 60% del stock: exactamente una pasa.
func TestApplyMovement_SalidasConcurrentesSerializadas(t *testing.T) {
	for run := 0; run < 50; run++ {
		f := newLedgerFixture(t, nil)
		f.seedProduct(t, "p1", 10)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		start := make(chan struct{})
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				_, errs[i] = f.uc.ApplyMovement(context.Background(), testTenant, out("p1", 6))
			}(i)
		}
		close(start)
		wg.Wait()

		ok, insufficient := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			default:
				t.Fatalf("error inesperado: %v", err)
			}
		}
		require.Equal(t, 1, ok, "corrida %d", run)
		require.Equal(t, 1, insufficient, "corrida %d", run)
		require.Equal(t, int64(4), f.stock(t, "p1"))
		require.Equal(t, 1, f.movementCount(t))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial y adaptador HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovementFromRequest_AceptaAliases(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 0)

	res, err := f.uc.RegisterMovementFromRequest(context.Background(), testTenant, dto.RegisterMovementRequest{
		ProductID: "p1", Direction: "entrada", Quantity: 7, Reason: "compra",
	})
	require.NoError(t, err)
	assert.Equal(t, "in", res.Direction)
	assert.Equal(t, "purchase", res.Reason)
}

func TestListMovements_FiltraPorDireccion(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 10)
	ctx := context.Background()

	_, err := f.uc.ApplyMovement(ctx, testTenant, out("p1", 1))
	require.NoError(t, err)
	_, err = f.uc.ApplyMovement(ctx, testTenant, inventory.MovementInput{
		ProductID: "p1", Direction: entity.DirectionIn, Quantity: 3, Reason: entity.ReasonReturn,
	})
	require.NoError(t, err)

	list, err := f.uc.ListMovements(ctx, testTenant, repository.MovementFilter{Direction: entity.DirectionOut, Limit: 20})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "out", list.Items[0].Direction)

	got, err := f.uc.GetMovement(ctx, testTenant, list.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, list.Items[0].ID, got.ID)

	_, err = f.uc.GetMovement(ctx, domain.NewTenant("tenant-2", domain.RoleClient), list.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
