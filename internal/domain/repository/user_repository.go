package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// ClientSettingsRepository plan y capacidades de cada cuenta.
type ClientSettingsRepository interface {
	Create(ctx context.Context, settings *entity.ClientSettings) error
	GetByUserID(ctx context.Context, userID string) (*entity.ClientSettings, error)
	Update(ctx context.Context, settings *entity.ClientSettings) error
}
