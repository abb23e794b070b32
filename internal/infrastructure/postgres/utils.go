package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de unique_violation.
const uniqueViolationCode = "23505"

// isUniqueViolation detecta choques de constraint único (email de usuario,
// internal_id o invoice_number) para traducirlos a errores de dominio.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
