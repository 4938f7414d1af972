package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// ClientUseCase administración de cuentas cliente: estado, plan y capacidades.
type ClientUseCase struct {
	userRepo     repository.UserRepository
	settingsRepo repository.ClientSettingsRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(userRepo repository.UserRepository, settingsRepo repository.ClientSettingsRepository, log zerolog.Logger) *ClientUseCase {
	return &ClientUseCase{userRepo: userRepo, settingsRepo: settingsRepo, log: log, now: time.Now}
}

// List cuentas con rol client y su configuración.
func (uc *ClientUseCase) List(ctx context.Context, admin domain.Tenant) ([]dto.ClientResponse, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	users, err := uc.userRepo.ListByRole(ctx, domain.RoleClient)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	out := make([]dto.ClientResponse, 0, len(users))
	for _, u := range users {
		s, err := uc.settingsRepo.GetByUserID(ctx, u.ID)
		if err != nil {
			return nil, domain.WrapPersistence(err)
		}
		out = append(out, toClientResponse(u, s))
	}
	return out, nil
}

// Get una cuenta cliente.
func (uc *ClientUseCase) Get(ctx context.Context, admin domain.Tenant, id string) (*dto.ClientResponse, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	u, s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toClientResponse(u, s)
	return &res, nil
}

// SetActive activa o desactiva una cuenta. Un admin no puede desactivarse a sí mismo.
func (uc *ClientUseCase) SetActive(ctx context.Context, admin domain.Tenant, id string, active bool) (*dto.ClientResponse, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if id == admin.UserID && !active {
		return nil, fmt.Errorf("%w: no puede desactivar su propia cuenta", domain.ErrConflict)
	}
	if err := uc.userRepo.SetActive(ctx, id, active); err != nil {
		return nil, domain.WrapPersistence(err)
	}
	uc.log.Info().Str("client_id", id).Bool("is_active", active).Str("admin_id", admin.UserID).
		Msg("estado de cuenta actualizado")
	return uc.Get(ctx, admin, id)
}

// UpdateFeatures aplica un parche tipado sobre plan y capacidades.
// Una cuenta sin configuración parte de los valores por defecto.
func (uc *ClientUseCase) UpdateFeatures(ctx context.Context, admin domain.Tenant, id string, in dto.UpdateClientFeaturesRequest) (*dto.ClientResponse, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.SubscriptionPlan != nil {
		switch *in.SubscriptionPlan {
		case entity.PlanBasic, entity.PlanPro, entity.PlanEnterprise:
		default:
			return nil, fmt.Errorf("%w: subscription_plan %q no soportado", domain.ErrInvalidInput, *in.SubscriptionPlan)
		}
	}

	u, s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	create := s == nil
	if create {
		s = &entity.ClientSettings{
			UserID:           u.ID,
			SubscriptionPlan: entity.PlanBasic,
			Features:         entity.DefaultClientFeatures(),
			CreatedAt:        now,
		}
	}
	applyFeaturePatch(s, in)
	s.UpdatedAt = now

	if create {
		err = uc.settingsRepo.Create(ctx, s)
	} else {
		err = uc.settingsRepo.Update(ctx, s)
	}
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	uc.log.Info().Str("client_id", id).Str("plan", s.SubscriptionPlan).Str("admin_id", admin.UserID).
		Msg("capacidades actualizadas")
	res := toClientResponse(u, s)
	return &res, nil
}

func (uc *ClientUseCase) load(ctx context.Context, id string) (*entity.User, *entity.ClientSettings, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, domain.WrapPersistence(err)
	}
	if u == nil {
		return nil, nil, domain.ErrNotFound
	}
	s, err := uc.settingsRepo.GetByUserID(ctx, id)
	if err != nil {
		return nil, nil, domain.WrapPersistence(err)
	}
	return u, s, nil
}

func applyFeaturePatch(s *entity.ClientSettings, in dto.UpdateClientFeaturesRequest) {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	if in.SubscriptionPlan != nil {
		s.SubscriptionPlan = *in.SubscriptionPlan
	}
	f := &s.Features
	set(&f.InventoryManagement, in.InventoryManagement)
	set(&f.ProductCategories, in.ProductCategories)
	set(&f.SupplierManagement, in.SupplierManagement)
	set(&f.Reports, in.Reports)
	set(&f.MultiWarehouse, in.MultiWarehouse)
	set(&f.BarcodeSupport, in.BarcodeSupport)
	set(&f.APIAccess, in.APIAccess)
	set(&f.EmailAlerts, in.EmailAlerts)
}

func toClientResponse(u *entity.User, s *entity.ClientSettings) dto.ClientResponse {
	res := dto.ClientResponse{
		UserResponse: dto.UserResponse{
			ID:          u.ID,
			Email:       u.Email,
			FullName:    u.FullName,
			CompanyName: u.CompanyName,
			Role:        u.Role,
			IsActive:    u.IsActive,
			CreatedAt:   u.CreatedAt,
			UpdatedAt:   u.UpdatedAt,
		},
		SubscriptionPlan: entity.PlanBasic,
		Features:         entity.DefaultClientFeatures(),
	}
	if s != nil {
		res.SubscriptionPlan = s.SubscriptionPlan
		res.Features = s.Features
	}
	return res
}
