package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(4)
}

// WeightedCost adapta CostCalculator a cantidades enteras de stock.
func WeightedCost(currentStock int64, currentCost decimal.Decimal, qtyIn int64, unitCost decimal.Decimal) decimal.Decimal {
	return CostCalculator(decimal.NewFromInt(currentStock), currentCost, decimal.NewFromInt(qtyIn), unitCost)
}
