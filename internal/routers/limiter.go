package routers

import (
	"fmt"
	"net"
	"strconv"
	"time"

	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redis_fiber "github.com/gofiber/storage/redis/v3"
	"github.com/rs/zerolog/log"
)

// newLimiterStorage trennt host und port aus der Redis-Adresse; ohne Port gilt 6379.
func newLimiterStorage(cfg CfgRedisStorage) fiber.Storage {
	host, portStr, err := net.SplitHostPort(cfg.Host)
	if err != nil {
		host, portStr = cfg.Host, "6379"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Host).Msg("Ungültiger Redis-Port für den Rate-Limiter, nutze 6379")
		port = 6379
	}

	return redis_fiber.New(redis_fiber.Config{
		Host:     host,
		Port:     port,
		Password: cfg.Password,
		Database: cfg.Database,
	})
}

// userLimiter begrenzt pro Benutzer und Pfadparameter; ohne Benutzer zählt die IP.
func userLimiter(name, param string, limit int, window time.Duration, store fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			userID := c.Locals("user_id")
			if userID == nil {
				return fmt.Sprintf("%s:ip:%s", name, c.IP())
			}
			return fmt.Sprintf("%s:%v:%s", name, userID, c.Params(param))
		},
		LimitReached: func(c *fiber.Ctx) error {
			return app_errors.NewAppError(fiber.StatusTooManyRequests, app_errors.ErrRateLimited, "too_many_requests", nil)
		},
		Storage: store,
	})
}
