package handlers

import (
	"github.com/Xenn-00/stufen-meister/internal/dtos"
	project_dto "github.com/Xenn-00/stufen-meister/internal/dtos/project-dto"
	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// CreateResponse erstellt eine standardisierte WebResponse.
func CreateResponse[T any](message string, data T, requestID string, details ...any) dtos.WebResponse[T] {
	return dtos.WebResponse[T]{
		Message:   message,
		Data:      data,
		RequestID: requestID,
		Details:   details,
	}
}

// NewValidator registriert die eigenen Tags, die die DTOs benutzen.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("requestState", task_dto.IsValidRequestState); err != nil {
		log.Fatal().Err(err).Msg("Validator requestState konnte nicht registriert werden")
	}
	return v
}

func GetUserID(c *fiber.Ctx) (string, *app_errors.AppError) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", nil)
	}

	return userID, nil
}

func GetRequestID(c *fiber.Ctx) string {
	reqID, ok := c.Locals("request_id").(string)
	if !ok {
		reqID = "unknown"
	}
	return reqID
}

func GetLang(c *fiber.Ctx) string {
	lang, ok := c.Locals("lang").(string)
	if !ok || lang == "" {
		return "en"
	}
	return lang
}

// ParseBody parst und validiert den JSON-Body in einem Schritt.
func ParseBody[T any](c *fiber.Ctx, v *validator.Validate, out *T) *app_errors.AppError {
	if err := c.BodyParser(out); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	if err := v.Struct(out); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return nil
}

func GetParamProjectID(c *fiber.Ctx, v *validator.Validate) (string, *app_errors.AppError) {
	var param project_dto.ParamProjectID
	if err := c.ParamsParser(&param); err != nil {
		return "", app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidParam, "request.invalid_param", err)
	}

	if err := v.Struct(param); err != nil {
		return "", app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return param.ID, nil
}

func GetParamTaskID(c *fiber.Ctx, v *validator.Validate) (string, *app_errors.AppError) {
	var param task_dto.ParamTaskID
	if err := c.ParamsParser(&param); err != nil {
		return "", app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidParam, "request.invalid_param", err)
	}

	if err := v.Struct(param); err != nil {
		return "", app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return param.ID, nil
}

func GetParamRequestID(c *fiber.Ctx, v *validator.Validate) (string, *app_errors.AppError) {
	var param task_dto.ParamRequestID
	if err := c.ParamsParser(&param); err != nil {
		return "", app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidParam, "request.invalid_param", err)
	}

	if err := v.Struct(param); err != nil {
		return "", app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return param.ID, nil
}

// WriteJSON schreibt die Antwort; Schreibfehler werden zu response.write_failed.
func WriteJSON(c *fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "response.write_failed", err)
	}
	return nil
}
