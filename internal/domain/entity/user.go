package entity

import "time"

// User es la cuenta de acceso. El tenant de un cliente es su propio ID.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	FullName     string
	CompanyName  string
	Role         string // admin, client
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
