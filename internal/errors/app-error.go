package app_errors

import "github.com/gofiber/fiber/v2"

// AppError ist der einheitliche Fehlertyp aller Repositories, Services und Handler.
// Der ErrorHandler von Fiber übersetzt MessageKey per i18n und schreibt Code als HTTP-Status.
type AppError struct {
	Code       int          // HTTP status code
	Type       string       // VALIDATION_ERROR, NOT_FOUND, INVALID_STATUS, usw
	MessageKey string       // i18n key
	Details    []FieldError // optional (validation)
	Err        error        // original error (internal only)
}

const (
	ErrValidation    = "VALIDATION_ERROR"
	ErrInvalidBody   = "INVALID_BODY"
	ErrInvalidParam  = "INVALID_PARAM"
	ErrInvalidQuery  = "INVALID_QUERY"
	ErrUnauthorized  = "UNAUTHORIZED"
	ErrForbidden     = "FORBIDDEN"
	ErrNotFound      = "NOT_FOUND"
	ErrConflict      = "CONFLICT"
	ErrInvalidStatus = "INVALID_STATUS"
	ErrInvalidState  = "INVALID_STATE"
	ErrRateLimited   = "RATE_LIMITED"
	ErrInternal      = "INTERNAL_ERROR"
)

type FieldError struct {
	Field      string         `json:"field"`
	Reason     string         `json:"reason"`
	MessageKey string         `json:"message_key"`
	Params     map[string]any `json:"params,omitempty"`
}

func NewAppError(code int, errType string, messageKey string, err error) *AppError {
	return &AppError{
		Code:       code,
		Type:       errType,
		MessageKey: messageKey,
		Err:        err,
	}
}

func NewValidationError(details []FieldError) *AppError {
	return &AppError{
		Code:       fiber.StatusBadRequest,
		Type:       ErrValidation,
		MessageKey: "invalid_request",
		Details:    details,
	}
}

func NewInternalError(err error) *AppError {
	return NewAppError(fiber.StatusInternalServerError, ErrInternal, "internal_error", err)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.MessageKey
}

// Is vergleicht nur den Typ, damit errors.Is mit den Sentinel-Werten unten funktioniert.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}
