package entity

import "time"

// Feature capacidad activable por cliente. El conjunto es cerrado.
type Feature string

const (
	FeatureInventoryManagement Feature = "inventory_management"
	FeatureProductCategories   Feature = "product_categories"
	FeatureSupplierManagement  Feature = "supplier_management"
	FeatureReports             Feature = "reports"
	FeatureMultiWarehouse      Feature = "multi_warehouse"
	FeatureBarcodeSupport      Feature = "barcode_support"
	FeatureAPIAccess           Feature = "api_access"
	FeatureEmailAlerts         Feature = "email_alerts"
)

// Planes de suscripción.
const (
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// ClientFeatures registro tipado de capacidades de un cliente.
type ClientFeatures struct {
	InventoryManagement bool `json:"inventory_management"`
	ProductCategories   bool `json:"product_categories"`
	SupplierManagement  bool `json:"supplier_management"`
	Reports             bool `json:"reports"`
	MultiWarehouse      bool `json:"multi_warehouse"`
	BarcodeSupport      bool `json:"barcode_support"`
	APIAccess           bool `json:"api_access"`
	EmailAlerts         bool `json:"email_alerts"`
}

// DefaultClientFeatures: lo básico activo, lo avanzado apagado.
func DefaultClientFeatures() ClientFeatures {
	return ClientFeatures{
		InventoryManagement: true,
		ProductCategories:   true,
		SupplierManagement:  true,
		Reports:             true,
	}
}

// Enabled consulta una capacidad. Una capacidad desconocida nunca está activa.
func (f ClientFeatures) Enabled(feature Feature) bool {
	switch feature {
	case FeatureInventoryManagement:
		return f.InventoryManagement
	case FeatureProductCategories:
		return f.ProductCategories
	case FeatureSupplierManagement:
		return f.SupplierManagement
	case FeatureReports:
		return f.Reports
	case FeatureMultiWarehouse:
		return f.MultiWarehouse
	case FeatureBarcodeSupport:
		return f.BarcodeSupport
	case FeatureAPIAccess:
		return f.APIAccess
	case FeatureEmailAlerts:
		return f.EmailAlerts
	}
	return false
}

// ClientSettings configuración administrativa de una cuenta cliente.
type ClientSettings struct {
	UserID           string
	SubscriptionPlan string
	Features         ClientFeatures
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
