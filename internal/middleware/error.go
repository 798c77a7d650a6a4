package middleware

import (
	"errors"

	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	internal_i18n "github.com/Xenn-00/stufen-meister/internal/i18n"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandlerMiddleware behandelt Fehler, die während der Anfrageverarbeitung auftreten.
func ErrorHandlerMiddleware(i18nSvc internal_i18n.Service) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		lang, _ := c.Locals("lang").(string)
		if lang == "" {
			lang = "en"
		}

		appErr := toAppError(err)
		message := i18nSvc.T(lang, appErr.MessageKey, nil)

		reqID, _ := c.Locals("request_id").(string)

		respErr := fiber.Map{
			"code":       appErr.Code,
			"type":       appErr.Type,
			"message":    message,
			"request_id": reqID,
		}

		if len(appErr.Details) > 0 {
			var details []fiber.Map

			for _, d := range appErr.Details {
				details = append(details, fiber.Map{
					"field":  d.Field,
					"reason": d.Reason,
					"message": i18nSvc.T(
						lang,
						d.MessageKey,
						d.Params,
					),
				})
			}

			respErr["details"] = details
		}

		if appErr.Code >= fiber.StatusInternalServerError {
			log.Error().Err(appErr.Err).Str("request_id", reqID).Msg("application error")
		} else if appErr.Err != nil {
			log.Debug().Err(appErr.Err).Str("request_id", reqID).Str("type", appErr.Type).Msg("client error")
		}

		return c.Status(appErr.Code).JSON(fiber.Map{
			"status": "error",
			"error":  respErr,
		})
	}
}

// toAppError übersetzt auch Fehler von Fiber selbst (404 für unbekannte Routen, 413 für zu große Bodies).
func toAppError(err error) *app_errors.AppError {
	var appErr *app_errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return app_errors.NewAppError(fiberErr.Code, app_errors.ErrNotFound, "not_found", err)
		case fiber.StatusRequestEntityTooLarge:
			return app_errors.NewAppError(fiberErr.Code, app_errors.ErrValidation, "request.file_too_large", err)
		case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest:
			return app_errors.NewAppError(fiberErr.Code, app_errors.ErrInvalidBody, "invalid_request", err)
		case fiber.StatusTooManyRequests:
			return app_errors.NewAppError(fiberErr.Code, app_errors.ErrRateLimited, "too_many_requests", err)
		}
	}

	return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
}
