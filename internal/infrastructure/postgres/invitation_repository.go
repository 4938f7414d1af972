package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

const invitationColumns = `id, code, role, max_uses, used_count, expires_at, is_active, created_by, created_at`

// InvitationRepo códigos de invitación.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el repo. Pasar pool o tx.
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

func scanInvitation(row pgx.Row) (*entity.Invitation, error) {
	var inv entity.Invitation
	if err := row.Scan(&inv.ID, &inv.Code, &inv.Role, &inv.MaxUses, &inv.UsedCount, &inv.ExpiresAt,
		&inv.IsActive, &inv.CreatedBy, &inv.CreatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.Code, inv.Role, inv.MaxUses, inv.UsedCount, inv.ExpiresAt, inv.IsActive,
		inv.CreatedBy, inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepo) GetByCode(ctx context.Context, code string) (*entity.Invitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}

func (r *InvitationRepo) List(ctx context.Context) ([]*entity.Invitation, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invitationColumns+` FROM invitations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InvitationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete invitation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Redeem canjea con un único UPDATE condicional: dos altas concurrentes no pueden
// superar max_uses. Si no se actualiza ninguna fila se relee para clasificar el motivo.
func (r *InvitationRepo) Redeem(ctx context.Context, code string, now time.Time) (string, error) {
	var role string
	err := r.q.QueryRow(ctx, `
		UPDATE invitations SET used_count = used_count + 1
		WHERE code = $1 AND is_active AND expires_at > $2 AND used_count < max_uses
		RETURNING role`, code, now).Scan(&role)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("redeem invitation: %w", err)
	}

	inv, err := r.GetByCode(ctx, code)
	if err != nil {
		return "", err
	}
	switch {
	case inv == nil || !inv.IsActive:
		return "", domain.ErrInvitationInvalid
	case inv.IsExpired(now):
		return "", domain.ErrInvitationExpired
	default:
		return "", domain.ErrInvitationExhausted
	}
}
