package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// InvitationRepository define el puerto de persistencia para Invitation.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *entity.Invitation) error
	GetByCode(ctx context.Context, code string) (*entity.Invitation, error)
	List(ctx context.Context) ([]*entity.Invitation, error)
	Delete(ctx context.Context, id string) error
	// Redeem incrementa used_count de forma atómica si el código sigue vigente en now
	// y devuelve el rol. Si no puede canjearlo devuelve ErrInvitationInvalid,
	// ErrInvitationExpired o ErrInvitationExhausted.
	Redeem(ctx context.Context, code string, now time.Time) (string, error)
}
