package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
)

type ledgerTestContext struct {
	products *memory.ProductRepo
	movs     *memory.StockMovementRepo
	uc       *inventory.LedgerUseCase
	ids      map[string]string // sku → id
	err      error
}

func (c *ledgerTestContext) reset() {
	store := memory.NewStore()
	c.products = memory.NewProductRepository(store)
	c.movs = memory.NewStockMovementRepository(store)
	c.uc = inventory.NewLedgerUseCase(store, inventory.NewKeyedLocker(time.Second), c.movs, zerolog.Nop())
	c.ids = make(map[string]string)
	c.err = nil
}

func (c *ledgerTestContext) aProductWithStock(sku string, stock int) error {
	id := "prod-" + sku
	c.ids[sku] = id
	now := time.Now()
	return c.products.Create(context.Background(), &entity.Product{
		ID:           id,
		TenantID:     testTenant.ID,
		SKU:          sku,
		Name:         sku,
		SalePrice:    decimal.NewFromInt(1),
		CurrentStock: int64(stock),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (c *ledgerTestContext) apply(sku, direction string, qty int64) error {
	reason := entity.ReasonPurchase
	if direction == "out" {
		reason = entity.ReasonSale
	}
	_, err := c.uc.ApplyMovement(context.Background(), testTenant, inventory.MovementInput{
		ProductID: c.ids[sku],
		Direction: entity.Direction(direction),
		Quantity:  qty,
		Reason:    reason,
	})
	return err
}

func (c *ledgerTestContext) iRegisterAMovementOfUnitsFor(direction string, qty int, sku string) error {
	c.err = c.apply(sku, direction, int64(qty))
	return nil
}

func (c *ledgerTestContext) iRegisterTheMovements(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // encabezado
		}
		qty, err := strconv.ParseInt(row.Cells[1].Value, 10, 64)
		if err != nil {
			return err
		}
		for sku := range c.ids {
			if err := c.apply(sku, row.Cells[0].Value, qty); err != nil {
				return fmt.Errorf("fila %d: %w", i, err)
			}
		}
	}
	return nil
}

func (c *ledgerTestContext) theMovementIsAccepted() error {
	if c.err != nil {
		return fmt.Errorf("se esperaba éxito, se obtuvo: %v", c.err)
	}
	return nil
}

func (c *ledgerTestContext) theMovementIsRejectedWith(kind string) error {
	want := map[string]error{
		"insufficient_stock": domain.ErrInsufficientStock,
		"validation":         domain.ErrInvalidInput,
		"not_found":          domain.ErrNotFound,
	}[kind]
	if want == nil {
		return fmt.Errorf("tipo de error desconocido %q", kind)
	}
	if !errors.Is(c.err, want) {
		return fmt.Errorf("se esperaba %v, se obtuvo %v", want, c.err)
	}
	return nil
}

func (c *ledgerTestContext) theStockOfIs(sku string, want int) error {
	p, err := c.products.GetByID(context.Background(), testTenant.ID, c.ids[sku])
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("producto %s no existe", sku)
	}
	if p.CurrentStock != int64(want) {
		return fmt.Errorf("stock esperado %d, obtenido %d", want, p.CurrentStock)
	}
	return nil
}

func (c *ledgerTestContext) hasMovements(sku string, want int) error {
	list, err := c.movs.List(context.Background(), testTenant.ID, repository.MovementFilter{ProductID: c.ids[sku]})
	if err != nil {
		return err
	}
	if len(list) != want {
		return fmt.Errorf("movimientos esperados %d, obtenidos %d", want, len(list))
	}
	return nil
}

func InitializeLedgerScenario(ctx *godog.ScenarioContext) {
	tc := &ledgerTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^a product "([^"]*)" with stock (\d+)$`, tc.aProductWithStock)

	// When
	ctx.Step(`^I register an? "(in|out)" movement of (-?\d+) units for "([^"]*)"$`, tc.iRegisterAMovementOfUnitsFor)
	ctx.Step(`^I register the movements:$`, tc.iRegisterTheMovements)

	// Then
	ctx.Step(`^the movement is accepted$`, tc.theMovementIsAccepted)
	ctx.Step(`^the movement is rejected with "([^"]*)"$`, tc.theMovementIsRejectedWith)
	ctx.Step(`^the stock of "([^"]*)" is (\d+)$`, tc.theStockOfIs)
	ctx.Step(`^"([^"]*)" has (\d+) movements$`, tc.hasMovements)
}

func TestLedgerFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeLedgerScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/ledger.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
