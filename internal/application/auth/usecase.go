package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/jwt"
)

const minPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	txRunner AccountTxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(txRunner AccountTxRunner, userRepo repository.UserRepository, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		txRunner: txRunner,
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		log:      log,
		now:      time.Now,
	}
}

func validateSignup(in *dto.SignupRequest) error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.InvitationCode = strings.ToUpper(strings.TrimSpace(in.InvitationCode))

	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	if in.FullName == "" {
		return fmt.Errorf("%w: full_name es requerido", domain.ErrInvalidInput)
	}
	return nil
}

// Signup crea la cuenta en una sola transacción: canje de invitación (si hay código),
// usuario y configuración con las capacidades por defecto. Si cualquier paso falla
// no queda nada persistido, en particular nunca una cuenta sin rol.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	if err := validateSignup(&in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		CompanyName:  in.CompanyName,
		Role:         domain.RoleClient,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunAccount(ctx, func(
		userRepo repository.UserRepository,
		settingsRepo repository.ClientSettingsRepository,
		invitationRepo repository.InvitationRepository,
	) error {
		existing, err := userRepo.FindByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if in.InvitationCode != "" {
			role, err := invitationRepo.Redeem(ctx, in.InvitationCode, now)
			if err != nil {
				return err
			}
			user.Role = role
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return settingsRepo.Create(ctx, &entity.ClientSettings{
			UserID:           user.ID,
			SubscriptionPlan: entity.PlanBasic,
			Features:         entity.DefaultClientFeatures(),
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	})
	if err != nil {
		if !domain.IsDomainError(err) {
			uc.log.Error().Err(err).Str("email", user.Email).Msg("signup: alta revertida")
		}
		return nil, domain.WrapPersistence(err)
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).
		Bool("invited", in.InvitationCode != "").Msg("cuenta creada")
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y contraseña incorrecta responden igual.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: cuenta desactivada", domain.ErrForbidden)
	}
	// El tenant es el propio usuario: cada cuenta es dueña de sus datos.
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, tenant domain.Tenant) (*dto.UserResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, tenant.UserID)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		CompanyName: u.CompanyName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
