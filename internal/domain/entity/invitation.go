package entity

import "time"

// Invitation código aleatorio con contador de usos, límite y vencimiento.
type Invitation struct {
	ID        string
	Code      string
	Role      string // admin, client
	MaxUses   int
	UsedCount int
	ExpiresAt time.Time
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
}

// IsExpired compara contra now.
func (i *Invitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// IsValid: activa, sin vencer y con usos disponibles.
func (i *Invitation) IsValid(now time.Time) bool {
	return i.IsActive && !i.IsExpired(now) && i.UsedCount < i.MaxUses
}
