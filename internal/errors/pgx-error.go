package app_errors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapPgxError übersetzt Treiberfehler in AppError. notFoundKey wird bei pgx.ErrNoRows verwendet;
// ohne Schlüssel gilt ErrNoRows als interner Fehler.
func MapPgxError(err error, notFoundKey ...string) *AppError {
	if errors.Is(err, pgx.ErrNoRows) && len(notFoundKey) > 0 {
		return NewNotFoundError(notFoundKey[0])
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return NewAppError(fiber.StatusConflict, ErrConflict, "conflict", err)
		case "23503": // foreign_key_violation
			return NewAppError(fiber.StatusBadRequest, ErrValidation, "invalid_request", err)
		}
	}

	return NewInternalError(err)
}
