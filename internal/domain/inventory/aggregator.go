package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// Class tramo de la curva ABC.
type Class string

const (
	ClassA Class = "A"
	ClassB Class = "B"
	ClassC Class = "C"
)

var (
	hundred    = decimal.NewFromInt(100)
	thresholdA = decimal.NewFromInt(80)
	thresholdB = decimal.NewFromInt(95)
)

// ABCItem una fila de la clasificación ABC, en orden descendente de valor.
type ABCItem struct {
	ProductID     string
	SKU           string
	Name          string
	Value         decimal.Decimal
	ValuePct      decimal.Decimal
	CumulativePct decimal.Decimal
	Class         Class
}

// Report resultado de Aggregate.
type Report struct {
	TotalValue decimal.Decimal
	LowStock   []*entity.Product
	ABC        []ABCItem
}

// Aggregate calcula valor total, alertas de stock bajo (inclusive) y la curva ABC.
// No modifica products. Empates de valor: nombre ascendente y luego ID.
func Aggregate(products []*entity.Product) Report {
	report := Report{
		TotalValue: decimal.Zero,
		LowStock:   []*entity.Product{},
		ABC:        make([]ABCItem, 0, len(products)),
	}

	sorted := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		report.TotalValue = report.TotalValue.Add(p.StockValue())
		if p.IsLowStock() {
			report.LowStock = append(report.LowStock, p)
		}
		sorted = append(sorted, p)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].StockValue(), sorted[j].StockValue()
		if !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	running := decimal.Zero
	for _, p := range sorted {
		value := p.StockValue()
		running = running.Add(value)

		valuePct, cumulative := decimal.Zero, decimal.Zero
		if report.TotalValue.IsPositive() {
			valuePct = value.Div(report.TotalValue).Mul(hundred)
			cumulative = running.Div(report.TotalValue).Mul(hundred)
		}

		report.ABC = append(report.ABC, ABCItem{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			Value:         value,
			ValuePct:      valuePct.Round(2),
			CumulativePct: cumulative.Round(2),
			Class:         classify(cumulative),
		})
	}
	return report
}

func classify(cumulativePct decimal.Decimal) Class {
	switch {
	case cumulativePct.LessThanOrEqual(thresholdA):
		return ClassA
	case cumulativePct.LessThanOrEqual(thresholdB):
		return ClassB
	default:
		return ClassC
	}
}
