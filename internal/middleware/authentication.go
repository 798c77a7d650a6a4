package middleware

import (
	"strings"

	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	auth_case "github.com/Xenn-00/stufen-meister/internal/use-cases/auth-case"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AuthMiddleware validiert das Authorization-Header ("Bearer <token>") und verifiziert das PASETO-Token.
// Verhalten:
//   - Fehlender Header, falsches Format, ungültiges Token oder beendete Sitzung ergeben HTTP 401.
//   - Bei Erfolg setzt es die Context-Lokale "user_id", "username", "email", "jti" und "device_name".
func AuthMiddleware(pasetoMaker *utils.PasetoMaker, redis *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized("auth.missing_token")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized("auth.invalid_token_format")
		}

		// Verifizieren via PASETO
		payload, err := pasetoMaker.VerifyToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("Token-Verifizierung fehlgeschlagen")
			return unauthorized("auth.invalid_token")
		}

		// Logout entfernt die Sitzung; das Token allein reicht dann nicht mehr.
		session, appErr := utils.GetCacheData[auth_case.SessionTracker](c.Context(), redis, auth_case.SessionKey(payload.JTI))
		if appErr != nil {
			return appErr
		}
		if session == nil || session.UserID != payload.UserID {
			return unauthorized("auth.session_expired")
		}

		// Speichern zu kontext, sodass Handler es nutzen kann
		c.Locals("user_id", payload.UserID)
		c.Locals("username", payload.Username)
		c.Locals("email", payload.Email)
		c.Locals("jti", payload.JTI)
		c.Locals("device_name", session.Device)

		return c.Next()
	}
}

func unauthorized(key string) *app_errors.AppError {
	return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, key, nil)
}
