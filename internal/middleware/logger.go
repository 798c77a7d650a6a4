package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// LoggerMiddleware protokolliert eingehende Anfragen und deren Antworten.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		reqID, _ := c.Locals("request_id").(string)

		// Der ErrorHandler setzt den Status erst nach diesem Log.
		event := log.Info()
		if err != nil {
			event = log.Warn().Err(err)
		}
		event.
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Dur("duration", time.Since(start)).
			Int("status", c.Response().StatusCode()).
			Msg("request")

		return err
	}
}
