package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isInvalidJSON verifica si el error es una sintaxis de texto inválida para jsonb (22P02).
func isInvalidJSON(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02" // invalid_text_representation
	}
	return false
}
