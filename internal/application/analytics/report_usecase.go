package analytics

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/i18n"
)

// ReportUseCase reporte de inventario: valor total, stock bajo y curva ABC, con exportación CSV y PDF.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	pdfGen      ReportPDFGenerator
	format      *i18n.Formatter
	log         zerolog.Logger
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. pdfGen puede ser nil (ExportPDF devuelve error).
func NewReportUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	pdfGen ReportPDFGenerator,
	format *i18n.Formatter,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		pdfGen:      pdfGen,
		format:      format,
		log:         log,
		now:         time.Now,
	}
}

// InventoryReport agrega todos los productos del tenant.
func (uc *ReportUseCase) InventoryReport(ctx context.Context, tenant domain.Tenant) (*dto.InventoryReportDTO, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll(ctx, tenant.ID)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	report := inventory.Aggregate(products)

	out := &dto.InventoryReportDTO{
		TotalValue:   report.TotalValue.Round(2),
		ProductCount: len(products),
		LowStock:     make([]dto.LowStockItemDTO, 0, len(report.LowStock)),
		ABC:          make([]dto.ABCItemDTO, 0, len(report.ABC)),
		GeneratedAt:  uc.now(),
	}
	for _, p := range report.LowStock {
		out.LowStock = append(out.LowStock, dto.LowStockItemDTO{
			ProductID:    p.ID,
			SKU:          p.SKU,
			ProductName:  p.Name,
			CurrentStock: p.CurrentStock,
			MinimumStock: p.MinimumStock,
		})
	}

	classes := map[inventory.Class]*dto.ABCClassSummaryDTO{}
	for _, c := range []inventory.Class{inventory.ClassA, inventory.ClassB, inventory.ClassC} {
		classes[c] = &dto.ABCClassSummaryDTO{Class: string(c), TotalValue: decimal.Zero}
	}
	for i, item := range report.ABC {
		out.ABC = append(out.ABC, dto.ABCItemDTO{
			Rank:          i + 1,
			ProductID:     item.ProductID,
			SKU:           item.SKU,
			ProductName:   item.Name,
			StockValue:    item.Value.Round(2),
			ValuePct:      item.ValuePct,
			CumulativePct: item.CumulativePct,
			Class:         string(item.Class),
		})
		s := classes[item.Class]
		s.ProductCount++
		s.TotalValue = s.TotalValue.Add(item.Value)
	}
	for _, c := range []inventory.Class{inventory.ClassA, inventory.ClassB, inventory.ClassC} {
		s := classes[c]
		s.TotalValue = s.TotalValue.Round(2)
		out.Classes = append(out.Classes, *s)
	}
	return out, nil
}

// ExportCSV escribe la curva ABC en CSV (una fila por producto, en orden ABC).
func (uc *ReportUseCase) ExportCSV(ctx context.Context, tenant domain.Tenant, w io.Writer) error {
	report, err := uc.InventoryReport(ctx, tenant)
	if err != nil {
		return err
	}
	rows := make([]*dto.ABCCSVRow, 0, len(report.ABC))
	for _, item := range report.ABC {
		rows = append(rows, &dto.ABCCSVRow{
			Rank:          item.Rank,
			SKU:           item.SKU,
			ProductName:   item.ProductName,
			StockValue:    item.StockValue.StringFixed(2),
			ValuePct:      item.ValuePct.StringFixed(2),
			CumulativePct: item.CumulativePct.StringFixed(2),
			Class:         item.Class,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("exportar csv: %w", err)
	}
	return nil
}

// ExportPDF genera el PDF del reporte.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, tenant domain.Tenant) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("report: generador PDF no configurado")
	}
	report, err := uc.InventoryReport(ctx, tenant)
	if err != nil {
		return nil, err
	}
	meta := ReportMeta{Format: uc.format}
	if u, err := uc.userRepo.GetByID(ctx, tenant.UserID); err == nil && u != nil {
		meta.CompanyName = u.CompanyName
		if meta.CompanyName == "" {
			meta.CompanyName = u.FullName
		}
	}
	pdf, err := uc.pdfGen.GenerateInventoryPDF(ctx, report, meta)
	if err != nil {
		uc.log.Error().Err(err).Str("tenant_id", tenant.ID).Msg("report: fallo al generar PDF")
		return nil, err
	}
	return pdf, nil
}
