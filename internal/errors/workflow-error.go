package app_errors

import "github.com/gofiber/fiber/v2"

// Fehlerarten des Status-Workflows und ihrer Vorbedingungen. Vergleich per errors.Is(err, app_errors.InvalidState).
var (
	InvalidStatus = &AppError{Code: fiber.StatusUnprocessableEntity, Type: ErrInvalidStatus, MessageKey: "workflow.invalid_status"}
	InvalidState  = &AppError{Code: fiber.StatusConflict, Type: ErrInvalidState, MessageKey: "workflow.invalid_state"}
	NotFound      = &AppError{Code: fiber.StatusNotFound, Type: ErrNotFound, MessageKey: "not_found"}
	Forbidden     = &AppError{Code: fiber.StatusForbidden, Type: ErrForbidden, MessageKey: "forbidden"}
)

// NewInvalidStatusError: Zielstatus ist nicht in den Stufen des Projekts enthalten.
func NewInvalidStatusError(err error) *AppError {
	return NewAppError(fiber.StatusUnprocessableEntity, ErrInvalidStatus, "workflow.invalid_status", err)
}

// NewInvalidStateError: Änderungsantrag existiert nicht oder ist nicht mehr offen.
func NewInvalidStateError(err error) *AppError {
	return NewAppError(fiber.StatusConflict, ErrInvalidState, "workflow.invalid_state", err)
}

func NewNotFoundError(messageKey string) *AppError {
	return NewAppError(fiber.StatusNotFound, ErrNotFound, messageKey, nil)
}

func NewForbiddenError(messageKey string) *AppError {
	return NewAppError(fiber.StatusForbidden, ErrForbidden, messageKey, nil)
}
