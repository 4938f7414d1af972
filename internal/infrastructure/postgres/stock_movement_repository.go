package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, tenant_id, product_id, direction, quantity, reason, notes, reference, unit_cost, created_by, created_at`

// StockMovementRepo libro de movimientos (solo INSERT y SELECT).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el repo. Pasar pool o tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var direction, reason string
	err := row.Scan(&m.ID, &m.TenantID, &m.ProductID, &direction, &m.Quantity, &reason,
		&m.Notes, &m.Reference, &m.UnitCost, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Direction = entity.Direction(direction)
	m.Reason = entity.Reason(reason)
	return &m, nil
}

// Create inserta un movimiento. La FK compuesta (tenant_id, product_id) rechaza productos de otro tenant.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TenantID, m.ProductID, string(m.Direction), m.Quantity, string(m.Reason),
		m.Notes, m.Reference, m.UnitCost, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, m.ProductID)
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento del tenant.
func (r *StockMovementRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// List historial filtrado, más reciente primero.
func (r *StockMovementRepo) List(ctx context.Context, tenantID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.ProductID != "" {
		add("product_id = $%d", filter.ProductID)
	}
	if filter.Direction != "" {
		add("direction = $%d", string(filter.Direction))
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at < $%d", *filter.To)
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidText(err) {
			return make([]*entity.StockMovement, 0), nil
		}
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	// product_id mal formado: sin historial.
	if err := rows.Err(); err != nil {
		if isInvalidText(err) {
			return make([]*entity.StockMovement, 0), nil
		}
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return list, nil
}
