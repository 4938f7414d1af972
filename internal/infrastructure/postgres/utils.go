package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila referenciada no existe o aún tiene dependientes.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isInvalidText 22P02: el valor no convierte al tipo de la columna, por ejemplo un id que no es UUID.
func isInvalidText(err error) bool {
	return pgCode(err) == "22P02"
}

// noRow un id mal formado no puede coincidir con ninguna fila: se trata igual que ErrNoRows.
func noRow(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// isCheckViolation 23514: por ejemplo current_stock >= 0.
func isCheckViolation(err error) bool {
	return pgCode(err) == "23514"
}

// zoneName nombre IANA para AT TIME ZONE. nil y time.Local caen en UTC: Postgres no conoce "Local".
func zoneName(loc *time.Location) string {
	if loc == nil || loc == time.Local {
		return "UTC"
	}
	return loc.String()
}
