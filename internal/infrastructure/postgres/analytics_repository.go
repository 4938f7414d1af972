package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y panel de administración.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// MovementTotalsByMonth unidades de entrada y salida agrupadas por mes de loc.
// El corte se hace en SQL con AT TIME ZONE: no depende de la zona de la sesión ni de time.Local.
func (r *AnalyticsRepo) MovementTotalsByMonth(ctx context.Context, tenantID string, since time.Time, loc *time.Location) ([]repository.MonthlyMovementTotals, error) {
	const query = `
	SELECT
	    to_char(date_trunc('month', created_at AT TIME ZONE $3), 'YYYY-MM')   AS month,
	    COALESCE(SUM(quantity) FILTER (WHERE direction = 'in'),  0)::BIGINT    AS units_in,
	    COALESCE(SUM(quantity) FILTER (WHERE direction = 'out'), 0)::BIGINT    AS units_out
	FROM stock_movements
	WHERE tenant_id = $1
	  AND created_at >= $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, tenantID, since, zoneName(loc))
	if err != nil {
		return nil, fmt.Errorf("analytics.MovementTotalsByMonth: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyMovementTotals
	for rows.Next() {
		var row repository.MonthlyMovementTotals
		if err := rows.Scan(&row.Month, &row.In, &row.Out); err != nil {
			return nil, fmt.Errorf("analytics.MovementTotalsByMonth scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountMovements cuenta movimientos de una dirección en [from, to).
func (r *AnalyticsRepo) CountMovements(ctx context.Context, tenantID string, direction entity.Direction, from, to time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM stock_movements
		WHERE tenant_id = $1 AND direction = $2 AND created_at >= $3 AND created_at < $4`,
		tenantID, string(direction), from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountMovements: %w", err)
	}
	return n, nil
}

// CountUsers cuenta usuarios de un rol ("" = todos).
func (r *AnalyticsRepo) CountUsers(ctx context.Context, role string, onlyActive bool) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users
		WHERE ($1 = '' OR role = $1) AND (NOT $2 OR is_active)`, role, onlyActive).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountUsers: %w", err)
	}
	return n, nil
}

// CountProducts total de productos de todos los tenants.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountProducts: %w", err)
	}
	return n, nil
}

// CountLowStockProducts productos activos con stock <= mínimo, de todos los tenants.
func (r *AnalyticsRepo) CountLowStockProducts(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE active AND current_stock <= minimum_stock`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountLowStockProducts: %w", err)
	}
	return n, nil
}
