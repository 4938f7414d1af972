package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/usecase"
)

// SetupHandler carga inicial de datos de ejemplo.
type SetupHandler struct {
	uc *usecase.SetupUseCase
}

// NewSetupHandler construye el handler.
func NewSetupHandler(uc *usecase.SetupUseCase) *SetupHandler {
	return &SetupHandler{uc: uc}
}

// SampleData godoc
// @Summary      Cargar datos de ejemplo
// @Description  Solo actúa si el tenant no tiene productos; si ya tiene devuelve seeded=false.
// @Tags         setup
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SetupResult
// @Router       /api/setup/sample-data [post]
func (h *SetupHandler) SampleData(c *fiber.Ctx) error {
	out, err := h.uc.SeedSampleData(c.Context(), tenantFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
