package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo invitaciones en memoria.
type InvitationRepo struct {
	c conn
}

// NewInvitationRepository construye el repo sobre el store.
func NewInvitationRepository(s *Store) *InvitationRepo {
	return &InvitationRepo{c: s.auto()}
}

func (r *InvitationRepo) Create(_ context.Context, invitation *entity.Invitation) error {
	return r.c.with(func(d *data) error {
		for _, inv := range d.invitations {
			if inv.Code == invitation.Code {
				return domain.ErrDuplicate
			}
		}
		d.invitations[invitation.ID] = *invitation
		return nil
	})
}

func (r *InvitationRepo) GetByCode(_ context.Context, code string) (*entity.Invitation, error) {
	var out *entity.Invitation
	err := r.c.with(func(d *data) error {
		for _, inv := range d.invitations {
			if inv.Code == code {
				out = &inv
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *InvitationRepo) List(_ context.Context) ([]*entity.Invitation, error) {
	out := make([]*entity.Invitation, 0)
	err := r.c.with(func(d *data) error {
		for _, inv := range d.invitations {
			out = append(out, &inv)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r *InvitationRepo) Delete(_ context.Context, id string) error {
	return r.c.with(func(d *data) error {
		if _, ok := d.invitations[id]; !ok {
			return domain.ErrNotFound
		}
		delete(d.invitations, id)
		return nil
	})
}

// Redeem comprueba e incrementa bajo el mismo candado.
func (r *InvitationRepo) Redeem(_ context.Context, code string, now time.Time) (string, error) {
	var role string
	err := r.c.with(func(d *data) error {
		for id, inv := range d.invitations {
			if inv.Code != code {
				continue
			}
			switch {
			case !inv.IsActive:
				return domain.ErrInvitationInvalid
			case inv.IsExpired(now):
				return domain.ErrInvitationExpired
			case inv.UsedCount >= inv.MaxUses:
				return domain.ErrInvitationExhausted
			}
			inv.UsedCount++
			d.invitations[id] = inv
			role = inv.Role
			return nil
		}
		return domain.ErrInvitationInvalid
	})
	return role, err
}
