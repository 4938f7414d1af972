package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/admin"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
)

// AdminHandler consola de administración (solo rol admin).
type AdminHandler struct {
	invitations *admin.InvitationUseCase
	clients     *admin.ClientUseCase
	stats       *admin.StatsUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(invitations *admin.InvitationUseCase, clients *admin.ClientUseCase, stats *admin.StatsUseCase) *AdminHandler {
	return &AdminHandler{invitations: invitations, clients: clients, stats: stats}
}

// Stats godoc
// @Summary      Estadísticas globales
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminStatsDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	out, err := h.stats.Stats(c.Context(), tenantFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListClients godoc
// @Summary      Listar clientes
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/admin/clients [get]
func (h *AdminHandler) ListClients(c *fiber.Ctx) error {
	out, err := h.clients.List(c.Context(), tenantFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetClient godoc
// @Summary      Obtener cliente
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/clients/{id} [get]
func (h *AdminHandler) GetClient(c *fiber.Ctx) error {
	out, err := h.clients.Get(c.Context(), tenantFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetClientStatus godoc
// @Summary      Activar o suspender cliente
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del cliente"
// @Param        body  body  dto.SetClientStatusRequest  true  "is_active"
// @Success      200   {object}  dto.ClientResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/clients/{id}/status [patch]
func (h *AdminHandler) SetClientStatus(c *fiber.Ctx) error {
	var in dto.SetClientStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.clients.SetActive(c.Context(), tenantFrom(c), c.Params("id"), in.IsActive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateClientFeatures godoc
// @Summary      Cambiar plan y capacidades
// @Description  Parche tipado: solo cambian los campos presentes.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del cliente"
// @Param        body  body  dto.UpdateClientFeaturesRequest  true  "plan y capacidades"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/clients/{id}/features [patch]
func (h *AdminHandler) UpdateClientFeatures(c *fiber.Ctx) error {
	var in dto.UpdateClientFeaturesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.clients.UpdateFeatures(c.Context(), tenantFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateInvitation godoc
// @Summary      Generar código de invitación
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "role, max_uses, expires_in_days"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/invitations [post]
func (h *AdminHandler) CreateInvitation(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invitations.Create(c.Context(), tenantFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInvitations godoc
// @Summary      Listar invitaciones
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InvitationResponse
// @Router       /api/admin/invitations [get]
func (h *AdminHandler) ListInvitations(c *fiber.Ctx) error {
	out, err := h.invitations.List(c.Context(), tenantFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteInvitation godoc
// @Summary      Eliminar invitación
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID de la invitación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/invitations/{id} [delete]
func (h *AdminHandler) DeleteInvitation(c *fiber.Ctx) error {
	if err := h.invitations.Delete(c.Context(), tenantFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
