package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// featureChecker es el contrato mínimo que necesita el middleware para verificar capacidades.
// Lo implementa *usecase.FeatureService; el uso de interfaz evita el import circular.
type featureChecker interface {
	HasFeature(ctx context.Context, tenant domain.Tenant, feature entity.Feature) (bool, error)
}

// RequireFeature verifica que el cliente del token tenga la capacidad activa.
// Debe usarse DESPUÉS de AuthMiddleware. Los administradores pasan siempre.
//
//   - 403 FEATURE_DISABLED → capacidad apagada para el cliente.
//   - 503 FEATURE_CHECK_FAILED → fallo al leer la configuración.
func RequireFeature(feature entity.Feature, checker featureChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenant := tenantFrom(c)
		if tenant.ID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "tenant_id no encontrado en el token",
			})
		}

		enabled, err := checker.HasFeature(c.Context(), tenant, feature)
		if err != nil {
			log.Error().Err(err).Str("tenant_id", tenant.ID).Str("feature", string(feature)).Msg("http: verificar capacidad")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "FEATURE_CHECK_FAILED",
				Message: "no se pudo verificar la capacidad, intente más tarde",
			})
		}

		if !enabled {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_DISABLED",
				Message: "la capacidad '" + string(feature) + "' no está activa para esta cuenta",
			})
		}

		return c.Next()
	}
}
