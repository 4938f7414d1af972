package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// MonthlyMovementTotals unidades entradas y salidas de un mes.
type MonthlyMovementTotals struct {
	Month string // "2006-01" en la zona horaria pedida
	In    int64
	Out   int64
}

// AnalyticsRepository consultas de solo lectura para dashboard y panel de administración.
type AnalyticsRepository interface {
	// MovementTotalsByMonth agrupa por mes calendario de loc desde since; los meses sin
	// movimientos no aparecen.
	MovementTotalsByMonth(ctx context.Context, tenantID string, since time.Time, loc *time.Location) ([]MonthlyMovementTotals, error)
	// CountMovements cuenta movimientos de una dirección en [from, to).
	CountMovements(ctx context.Context, tenantID string, direction entity.Direction, from, to time.Time) (int, error)

	// ── Métodos globales (administración) ─────────────────────────────────────

	CountUsers(ctx context.Context, role string, onlyActive bool) (int, error)
	CountProducts(ctx context.Context) (int, error)
	CountLowStockProducts(ctx context.Context) (int, error)
}
