// Package analytics contiene los casos de uso de reportes de inventario y el
// dashboard del cliente.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/i18n"
)

const (
	dashboardMonths      = 6 // meses de la serie de movimientos
	dashboardLowStockTop = 5 // productos en el widget de alertas
)

// DashboardUseCase genera el resumen del tenant: totales, serie mensual y alertas.
//
// Fuente de datos: ProductRepository (valor y alertas) y AnalyticsRepository (movimientos).
type DashboardUseCase struct {
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	format        *i18n.Formatter
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc define el "hoy" y los cortes de mes;
// nil = UTC.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
	format *i18n.Formatter,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
		format:        format,
		loc:           loc,
		now:           time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO del tenant.
//
// Tres consultas en paralelo:
//  1. ListAll                      → TotalProducts, TotalStockValue, LowStock*
//  2. MovementTotalsByMonth(6 m)   → Monthly
//  3. CountMovements(out, hoy)     → TodayOutgoing
func (uc *DashboardUseCase) GetSummary(ctx context.Context, tenant domain.Tenant) (*dto.DashboardSummaryDTO, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loc)

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	seriesStart := monthStart.AddDate(0, -(dashboardMonths - 1), 0)

	// ── Goroutines para paralelizar las 3 consultas ───────────────────────────
	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type monthlyResult struct {
		totals []repository.MonthlyMovementTotals
		err    error
	}
	type countResult struct {
		n   int
		err error
	}

	productsCh := make(chan productsResult, 1)
	monthlyCh := make(chan monthlyResult, 1)
	todayCh := make(chan countResult, 1)

	go func() {
		list, err := uc.productRepo.ListAll(ctx, tenant.ID)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		totals, err := uc.analyticsRepo.MovementTotalsByMonth(ctx, tenant.ID, seriesStart, uc.loc)
		monthlyCh <- monthlyResult{totals, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountMovements(ctx, tenant.ID, entity.DirectionOut, todayStart, todayEnd)
		todayCh <- countResult{n, err}
	}()

	products := <-productsCh
	monthly := <-monthlyCh
	today := <-todayCh

	if products.err != nil {
		return nil, domain.WrapPersistence(fmt.Errorf("dashboard: productos: %w", products.err))
	}
	if monthly.err != nil {
		return nil, domain.WrapPersistence(fmt.Errorf("dashboard: movimientos por mes: %w", monthly.err))
	}
	if today.err != nil {
		return nil, domain.WrapPersistence(fmt.Errorf("dashboard: salidas de hoy: %w", today.err))
	}

	report := inventory.Aggregate(products.products)

	// Las alertas ignoran productos inactivos, igual que las alertas de reposición.
	lowStock := make([]*entity.Product, 0, len(report.LowStock))
	for _, p := range report.LowStock {
		if p.Active {
			lowStock = append(lowStock, p)
		}
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:   len(products.products),
		LowStockCount:   len(lowStock),
		TotalStockValue: report.TotalValue.Round(2),
		TodayOutgoing:   today.n,
		Monthly:         uc.fillMonths(seriesStart, monthly.totals),
		LowStockTop:     topDeficit(lowStock, dashboardLowStockTop),
		DateLabel:       uc.format.MonthLabel(now),
	}, nil
}

// fillMonths devuelve exactamente dashboardMonths entradas; los meses ausentes van en 0.
// start ya está en uc.loc, la misma zona con la que el repo arma las claves.
func (uc *DashboardUseCase) fillMonths(start time.Time, totals []repository.MonthlyMovementTotals) []dto.MonthlyMovementDTO {
	byKey := make(map[string]repository.MonthlyMovementTotals, len(totals))
	for _, t := range totals {
		byKey[t.Month] = t
	}
	out := make([]dto.MonthlyMovementDTO, 0, dashboardMonths)
	for i := 0; i < dashboardMonths; i++ {
		m := start.AddDate(0, i, 0)
		key := m.Format("2006-01")
		t := byKey[key]
		out = append(out, dto.MonthlyMovementDTO{
			Month: key,
			Label: uc.format.ShortMonth(m),
			In:    t.In,
			Out:   t.Out,
		})
	}
	return out
}

// topDeficit ordena por mínimo - actual descendente (empates por SKU) y corta en n.
func topDeficit(low []*entity.Product, n int) []dto.LowStockItemDTO {
	sorted := make([]*entity.Product, len(low))
	copy(sorted, low)
	sort.SliceStable(sorted, func(i, j int) bool {
		di := sorted[i].MinimumStock - sorted[i].CurrentStock
		dj := sorted[j].MinimumStock - sorted[j].CurrentStock
		if di != dj {
			return di > dj
		}
		return sorted[i].SKU < sorted[j].SKU
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]dto.LowStockItemDTO, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, dto.LowStockItemDTO{
			ProductID:    p.ID,
			SKU:          p.SKU,
			ProductName:  p.Name,
			CurrentStock: p.CurrentStock,
			MinimumStock: p.MinimumStock,
		})
	}
	return out
}
