package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var (
	_ repository.UserRepository           = (*UserRepo)(nil)
	_ repository.ClientSettingsRepository = (*ClientSettingsRepo)(nil)
)

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct {
	c conn
}

// NewUserRepository construye el repo sobre el store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{c: s.auto()}
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.c.with(func(d *data) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.c.with(func(d *data) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.c.with(func(d *data) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	out := make([]*entity.User, 0)
	err := r.c.with(func(d *data) error {
		for _, u := range d.users {
			if role == "" || u.Role == role {
				out = append(out, &u)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r *UserRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.c.with(func(d *data) error {
		u, ok := d.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.IsActive = active
		d.users[id] = u
		return nil
	})
}

// ClientSettingsRepo configuración de clientes en memoria.
type ClientSettingsRepo struct {
	c conn
}

// NewClientSettingsRepository construye el repo sobre el store.
func NewClientSettingsRepository(s *Store) *ClientSettingsRepo {
	return &ClientSettingsRepo{c: s.auto()}
}

func (r *ClientSettingsRepo) Create(_ context.Context, settings *entity.ClientSettings) error {
	return r.c.with(func(d *data) error {
		if _, ok := d.users[settings.UserID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := d.settings[settings.UserID]; ok {
			return domain.ErrDuplicate
		}
		d.settings[settings.UserID] = *settings
		return nil
	})
}

func (r *ClientSettingsRepo) GetByUserID(_ context.Context, userID string) (*entity.ClientSettings, error) {
	var out *entity.ClientSettings
	err := r.c.with(func(d *data) error {
		if s, ok := d.settings[userID]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *ClientSettingsRepo) Update(_ context.Context, settings *entity.ClientSettings) error {
	return r.c.with(func(d *data) error {
		if _, ok := d.settings[settings.UserID]; !ok {
			return domain.ErrNotFound
		}
		d.settings[settings.UserID] = *settings
		return nil
	})
}
