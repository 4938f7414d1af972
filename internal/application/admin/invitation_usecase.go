package admin

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

const (
	codeLength        = 8
	codeAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts   = 5
	defaultExpiryDays = 7
)

// InvitationUseCase gestión de códigos de invitación (solo admin).
type InvitationUseCase struct {
	repo repository.InvitationRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewInvitationUseCase construye el caso de uso.
func NewInvitationUseCase(repo repository.InvitationRepository, log zerolog.Logger) *InvitationUseCase {
	return &InvitationUseCase{repo: repo, log: log, now: time.Now}
}

// GenerateCode código de 8 caracteres en mayúsculas y dígitos, de fuente criptográfica.
func GenerateCode() (string, error) {
	base := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, codeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("generar código: %w", err)
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// Create genera una invitación. Reintenta si el código choca con uno existente.
func (uc *InvitationUseCase) Create(ctx context.Context, admin domain.Tenant, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Role != domain.RoleAdmin && in.Role != domain.RoleClient {
		return nil, fmt.Errorf("%w: role debe ser admin o client", domain.ErrInvalidInput)
	}
	if in.MaxUses == 0 {
		in.MaxUses = 1
	}
	if in.ExpiresInDays == 0 {
		in.ExpiresInDays = defaultExpiryDays
	}
	if in.MaxUses < 1 || in.ExpiresInDays < 1 {
		return nil, fmt.Errorf("%w: max_uses y expires_in_days deben ser >= 1", domain.ErrInvalidInput)
	}

	now := uc.now()
	inv := &entity.Invitation{
		ID:        uuid.New().String(),
		Role:      in.Role,
		MaxUses:   in.MaxUses,
		ExpiresAt: now.AddDate(0, 0, in.ExpiresInDays),
		IsActive:  true,
		CreatedBy: admin.UserID,
		CreatedAt: now,
	}
	for attempt := 1; ; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			return nil, err
		}
		inv.Code = code
		err = uc.repo.Create(ctx, inv)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt == maxCodeAttempts {
			return nil, domain.WrapPersistence(err)
		}
		uc.log.Warn().Int("attempt", attempt).Msg("invitación: código repetido, reintentando")
	}

	uc.log.Info().Str("invitation_id", inv.ID).Str("role", inv.Role).Int("max_uses", inv.MaxUses).
		Str("created_by", admin.UserID).Msg("invitación creada")
	return toInvitationResponse(inv, now), nil
}

// List todas las invitaciones, más recientes primero.
func (uc *InvitationUseCase) List(ctx context.Context, admin domain.Tenant) ([]dto.InvitationResponse, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	now := uc.now()
	out := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvitationResponse(inv, now))
	}
	return out, nil
}

// Delete elimina una invitación.
func (uc *InvitationUseCase) Delete(ctx context.Context, admin domain.Tenant, id string) error {
	if !admin.IsAdmin() {
		return domain.ErrForbidden
	}
	return domain.WrapPersistence(uc.repo.Delete(ctx, id))
}

func toInvitationResponse(inv *entity.Invitation, now time.Time) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:        inv.ID,
		Code:      inv.Code,
		Role:      inv.Role,
		MaxUses:   inv.MaxUses,
		UsedCount: inv.UsedCount,
		ExpiresAt: inv.ExpiresAt,
		IsActive:  inv.IsActive,
		IsValid:   inv.IsValid(now),
		CreatedBy: inv.CreatedBy,
		CreatedAt: inv.CreatedAt,
	}
}
