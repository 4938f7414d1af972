package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// FeatureService verifica qué capacidades tiene activas una cuenta.
// Es el único punto de la aplicación que conoce la lógica de activación de capacidades.
type FeatureService struct {
	settingsRepo repository.ClientSettingsRepository
}

// NewFeatureService construye el servicio de capacidades.
func NewFeatureService(settingsRepo repository.ClientSettingsRepository) *FeatureService {
	return &FeatureService{settingsRepo: settingsRepo}
}

// Features capacidades efectivas del tenant. Sin configuración guardada rigen los valores por defecto.
func (s *FeatureService) Features(ctx context.Context, tenant domain.Tenant) (entity.ClientFeatures, error) {
	if err := tenant.Validate(); err != nil {
		return entity.ClientFeatures{}, err
	}
	settings, err := s.settingsRepo.GetByUserID(ctx, tenant.UserID)
	if err != nil {
		return entity.ClientFeatures{}, domain.WrapPersistence(err)
	}
	if settings == nil {
		return entity.DefaultClientFeatures(), nil
	}
	return settings.Features, nil
}

// HasFeature informa si el tenant tiene la capacidad activa. Un admin tiene todas.
// Devuelve false (sin error) si la cuenta no la tiene.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *FeatureService) HasFeature(ctx context.Context, tenant domain.Tenant, feature entity.Feature) (bool, error) {
	if feature == "" {
		return false, fmt.Errorf("feature: el nombre de la capacidad es obligatorio")
	}
	if err := tenant.Validate(); err != nil {
		return false, err
	}
	if tenant.IsAdmin() {
		return true, nil
	}
	features, err := s.Features(ctx, tenant)
	if err != nil {
		return false, err
	}
	return features.Enabled(feature), nil
}
