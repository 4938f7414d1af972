package analytics

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/pkg/i18n"
)

// ReportMeta datos de cabecera del PDF.
type ReportMeta struct {
	CompanyName string
	Format      *i18n.Formatter
}

// ReportPDFGenerator puerto para la representación en PDF del reporte de inventario.
type ReportPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, report *dto.InventoryReportDTO, meta ReportMeta) ([]byte, error)
}
