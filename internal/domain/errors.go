package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrPersistence        = errors.New("error de persistencia")
	ErrLockTimeout        = errors.New("no se pudo bloquear el producto a tiempo")

	// Invitaciones
	ErrInvitationInvalid   = errors.New("código de invitación inválido")
	ErrInvitationExpired   = errors.New("código de invitación expirado")
	ErrInvitationExhausted = errors.New("código de invitación sin usos disponibles")
)

// IsDomainError informa si err es (o envuelve) uno de los errores de dominio conocidos.
// Lo usan los casos de uso para decidir si un fallo debe envolverse como ErrPersistence.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUserNotFound, ErrEmailAlreadyExists, ErrInvalidInput, ErrDuplicate,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrInsufficientStock, ErrPersistence, ErrLockTimeout,
		ErrInvitationInvalid, ErrInvitationExpired, ErrInvitationExhausted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WrapPersistence deja pasar los errores de dominio y envuelve el resto como ErrPersistence.
func WrapPersistence(err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
