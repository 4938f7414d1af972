// Package pdf implementa el reporte de inventario en PDF (curva ABC).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa             │  Título + Fecha de emisión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Valor total | Productos | Stock bajo               │
//	│  CLASES: A / B / C con cantidad y valor                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | SKU | Producto | Valor | % | % Acum. | Clase     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK BAJO: SKU | Producto | Actual | Mínimo                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/pkg/i18n"
)

var _ analytics.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}

	classColors = map[string]*props.Color{
		"A": {Red: 0, Green: 120, Blue: 60},
		"B": {Red: 200, Green: 130, Blue: 0},
		"C": colorGray,
	}
)

// ── Textos por idioma ─────────────────────────────────────────────────────────

type labels struct {
	title, issued, totalValue, products, lowStock, class                string
	rank, sku, product, value, pct, cumulative, current, minimum, empty string
}

var labelsByLang = map[string]labels{
	"pt": {
		title: "RELATÓRIO DE ESTOQUE", issued: "Emitido em", totalValue: "Valor total em estoque",
		products: "Produtos", lowStock: "Estoque baixo", class: "Classe",
		rank: "#", sku: "SKU", product: "Produto", value: "Valor", pct: "%", cumulative: "% Acum.",
		current: "Atual", minimum: "Mínimo", empty: "Nenhum produto cadastrado.",
	},
	"es": {
		title: "REPORTE DE INVENTARIO", issued: "Emitido el", totalValue: "Valor total en inventario",
		products: "Productos", lowStock: "Stock bajo", class: "Clase",
		rank: "#", sku: "SKU", product: "Producto", value: "Valor", pct: "%", cumulative: "% Acum.",
		current: "Actual", minimum: "Mínimo", empty: "No hay productos registrados.",
	},
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInventoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInventoryPDF(
	_ context.Context,
	report *dto.InventoryReportDTO,
	meta analytics.ReportMeta,
) ([]byte, error) {
	f := meta.Format
	if f == nil {
		f = i18n.New("pt-BR")
	}
	l, ok := labelsByLang[f.Lang()]
	if !ok {
		l = labelsByLang["pt"]
	}
	company := nonEmpty(meta.CompanyName, "—")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(l.title, true).
		WithAuthor(company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, report, f, l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report, f, l))
	m.AddRows(classesRow(report, f, l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Curva ABC
	m.AddRows(abcHeaderRow(l))
	if len(report.ABC) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(l.empty, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	for _, r := range abcRows(report.ABC, f) {
		m.AddRows(r)
	}

	// Alertas
	if len(report.LowStock) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorAlert, Thickness: 0.3}))
		for _, r := range lowStockRows(report.LowStock, f, l) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y título + fecha (der).
func headerRow(company string, report *dto.InventoryReportDTO, f *i18n.Formatter, l labels) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(l.title, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(l.issued+" "+f.Date(report.GeneratedAt), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRow: valor total, cantidad de productos y alertas.
func summaryRow(report *dto.InventoryReportDTO, f *i18n.Formatter, l labels) core.Row {
	block := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Color: c, Top: 6, Align: align.Center}),
		)
	}
	lowColor := colorPrimary
	if len(report.LowStock) > 0 {
		lowColor = colorAlert
	}
	return row.New(16).Add(
		block(l.totalValue, f.Money(report.TotalValue), colorPrimary),
		block(l.products, f.Number(int64(report.ProductCount)), colorPrimary),
		block(l.lowStock, f.Number(int64(len(report.LowStock))), lowColor),
	)
}

// classesRow: una columna por clase A/B/C.
func classesRow(report *dto.InventoryReportDTO, f *i18n.Formatter, l labels) core.Row {
	cols := make([]core.Col, 0, len(report.Classes))
	for _, c := range report.Classes {
		cols = append(cols, col.New(4).Add(
			text.New(l.class+" "+c.Class, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: classColors[c.Class], Top: 1, Align: align.Center,
			}),
			text.New(fmt.Sprintf("%s %s · %s", f.Number(int64(c.ProductCount)), l.products, f.Money(c.TotalValue)), props.Text{
				Size: 8, Color: colorGray, Top: 6, Align: align.Center,
			}),
		))
	}
	return row.New(12).Add(cols...)
}

// abcHeaderRow: cabecera de la tabla ABC.
func abcHeaderRow(l labels) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(l.rank, 1, align.Center),
		h(l.sku, 2, align.Left),
		h(l.product, 4, align.Left),
		h(l.value, 2, align.Right),
		h(l.pct, 1, align.Right),
		h(l.cumulative, 1, align.Right),
		h(l.class, 1, align.Center),
	)
}

// abcRows: una fila por producto en orden de valor.
func abcRows(items []dto.ABCItemDTO, f *i18n.Formatter) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Rank), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(f.Money(it.StockValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(f.Percent(it.ValuePct), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(f.Percent(it.CumulativePct), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.Class, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: classColors[it.Class],
			})),
		))
	}
	return result
}

// lowStockRows: título + tabla de productos en alerta.
func lowStockRows(items []dto.LowStockItemDTO, f *i18n.Formatter, l labels) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(l.lowStock, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorAlert, Top: 1}),
		)),
	}
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.current+": "+f.Number(it.CurrentStock), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
			col.New(2).Add(text.New(l.minimum+": "+f.Number(it.MinimumStock), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
