package auth

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// AccountTxRunner ejecuta el alta de una cuenta en una sola transacción:
// canje de invitación, usuario y configuración se confirman juntos o no se confirma nada.
type AccountTxRunner interface {
	RunAccount(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		settingsRepo repository.ClientSettingsRepository,
		invitationRepo repository.InvitationRepository,
	) error) error
}
