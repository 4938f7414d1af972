package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Estoque-api/pkg/i18n"
)

func sampleReport() *dto.InventoryReportDTO {
	return &dto.InventoryReportDTO{
		TotalValue:   decimal.NewFromInt(1000),
		ProductCount: 2,
		GeneratedAt:  time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC),
		ABC: []dto.ABCItemDTO{
			{Rank: 1, SKU: "CEL-001", ProductName: "Smartphone", StockValue: decimal.NewFromInt(900),
				ValuePct: decimal.NewFromInt(90), CumulativePct: decimal.NewFromInt(90), Class: "B"},
			{Rank: 2, SKU: "CAF-001", ProductName: "Café", StockValue: decimal.NewFromInt(100),
				ValuePct: decimal.NewFromInt(10), CumulativePct: decimal.NewFromInt(100), Class: "C"},
		},
		Classes: []dto.ABCClassSummaryDTO{
			{Class: "A", TotalValue: decimal.Zero},
			{Class: "B", ProductCount: 1, TotalValue: decimal.NewFromInt(900)},
			{Class: "C", ProductCount: 1, TotalValue: decimal.NewFromInt(100)},
		},
		LowStock: []dto.LowStockItemDTO{{SKU: "CAF-001", ProductName: "Café", CurrentStock: 2, MinimumStock: 10}},
	}
}

func TestGenerateInventoryPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()

	for _, locale := range []string{"pt-BR", "es-CO"} {
		out, err := g.GenerateInventoryPDF(context.Background(), sampleReport(), analytics.ReportMeta{
			CompanyName: "Loja da Ana",
			Format:      i18n.New(locale),
		})
		require.NoError(t, err, locale)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), locale)
	}
}

func TestGenerateInventoryPDF_ReporteVacioSinFormatter(t *testing.T) {
	out, err := pdf.NewMarotoPDFGenerator().GenerateInventoryPDF(context.Background(), &dto.InventoryReportDTO{
		TotalValue: decimal.Zero,
		Classes: []dto.ABCClassSummaryDTO{
			{Class: "A", TotalValue: decimal.Zero}, {Class: "B", TotalValue: decimal.Zero}, {Class: "C", TotalValue: decimal.Zero},
		},
	}, analytics.ReportMeta{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
