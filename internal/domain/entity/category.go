package entity

import "time"

// Category agrupa productos de un tenant.
type Category struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Supplier proveedor de un tenant.
type Supplier struct {
	ID        string
	TenantID  string
	Name      string
	TaxID     string // CNPJ / NIT
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
