package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
)

func product(id, name string, stock, min int64, price int64) *entity.Product {
	return &entity.Product{
		ID:           id,
		Name:         name,
		SKU:          "SKU-" + id,
		CurrentStock: stock,
		MinimumStock: min,
		SalePrice:    decimal.NewFromInt(price),
	}
}

func TestAggregate_SinProductos(t *testing.T) {
	r := inventory.Aggregate(nil)

	assert.True(t, r.TotalValue.IsZero())
	assert.NotNil(t, r.LowStock)
	assert.Empty(t, r.LowStock)
	assert.Empty(t, r.ABC)
}

func TestAggregate_CurvaABC(t *testing.T) {
	// valores 500, 300, 150, 50 (total 1000), desordenados a propósito
	products := []*entity.Product{
		product("c", "Cafetera", 1, 0, 150),
		product("a", "Celular", 5, 0, 100),
		product("d", "Cable", 10, 0, 5),
		product("b", "Notebook", 3, 0, 100),
	}

	r := inventory.Aggregate(products)

	require.Len(t, r.ABC, 4)
	assert.True(t, decimal.NewFromInt(1000).Equal(r.TotalValue))

	wantIDs := []string{"a", "b", "c", "d"}
	wantPct := []int64{50, 80, 95, 100}
	wantClass := []inventory.Class{inventory.ClassA, inventory.ClassA, inventory.ClassB, inventory.ClassC}
	for i, item := range r.ABC {
		assert.Equal(t, wantIDs[i], item.ProductID, "posición %d", i)
		assert.True(t, decimal.NewFromInt(wantPct[i]).Equal(item.CumulativePct),
			"acumulado %d: esperado %d, obtenido %s", i, wantPct[i], item.CumulativePct)
		assert.Equal(t, wantClass[i], item.Class, "clase %d", i)
	}
}

func TestAggregate_NoModificaEntrada(t *testing.T) {
	products := []*entity.Product{
		product("x", "Menor", 1, 0, 1),
		product("y", "Mayor", 100, 0, 1),
	}
	_ = inventory.Aggregate(products)

	assert.Equal(t, "x", products[0].ID)
	assert.Equal(t, "y", products[1].ID)
}

func TestAggregate_StockBajoLimiteInclusivo(t *testing.T) {
	products := []*entity.Product{
		product("igual", "Igual", 5, 5, 10),
		product("debajo", "Debajo", 2, 5, 10),
		product("encima", "Encima", 6, 5, 10),
	}

	r := inventory.Aggregate(products)

	ids := make([]string, 0, len(r.LowStock))
	for _, p := range r.LowStock {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"igual", "debajo"}, ids)
}

func TestAggregate_ValorTotalCeroSinDivisionPorCero(t *testing.T) {
	products := []*entity.Product{
		product("a", "Sin stock", 0, 1, 100),
		product("b", "Sin precio", 10, 1, 0),
	}

	r := inventory.Aggregate(products)

	require.Len(t, r.ABC, 2)
	for _, item := range r.ABC {
		assert.True(t, item.CumulativePct.IsZero())
		assert.Equal(t, inventory.ClassA, item.Class)
	}
}

func TestAggregate_EmpateOrdenaPorNombre(t *testing.T) {
	products := []*entity.Product{
		product("2", "Zeta", 1, 0, 10),
		product("1", "Alfa", 1, 0, 10),
		product("3", "Alfa", 1, 0, 10),
	}

	r := inventory.Aggregate(products)

	require.Len(t, r.ABC, 3)
	assert.Equal(t, []string{"1", "3", "2"},
		[]string{r.ABC[0].ProductID, r.ABC[1].ProductID, r.ABC[2].ProductID})
}
