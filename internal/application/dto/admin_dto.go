package dto

import (
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// CreateInvitationRequest entrada para generar un código de invitación.
type CreateInvitationRequest struct {
	Role          string `json:"role" validate:"required,oneof=admin client"`
	MaxUses       int    `json:"max_uses" validate:"omitempty,min=1"`      // 0 = 1 uso
	ExpiresInDays int    `json:"expires_in_days" validate:"omitempty,min=1"` // 0 = 7 días
}

// InvitationResponse salida de una invitación.
type InvitationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Role      string    `json:"role"`
	MaxUses   int       `json:"max_uses"`
	UsedCount int       `json:"used_count"`
	ExpiresAt time.Time `json:"expires_at"`
	IsActive  bool      `json:"is_active"`
	IsValid   bool      `json:"is_valid"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientResponse cuenta cliente con su plan y capacidades.
type ClientResponse struct {
	UserResponse
	SubscriptionPlan string                `json:"subscription_plan"`
	Features         entity.ClientFeatures `json:"features"`
}

// SetClientStatusRequest body de PATCH /api/admin/clients/:id/status.
type SetClientStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// UpdateClientFeaturesRequest parche tipado: solo se cambian los campos presentes.
type UpdateClientFeaturesRequest struct {
	SubscriptionPlan    *string `json:"subscription_plan" validate:"omitempty,oneof=basic pro enterprise"`
	InventoryManagement *bool   `json:"inventory_management"`
	ProductCategories   *bool   `json:"product_categories"`
	SupplierManagement  *bool   `json:"supplier_management"`
	Reports             *bool   `json:"reports"`
	MultiWarehouse      *bool   `json:"multi_warehouse"`
	BarcodeSupport      *bool   `json:"barcode_support"`
	APIAccess           *bool   `json:"api_access"`
	EmailAlerts         *bool   `json:"email_alerts"`
}
