package routers

import (
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/storage"
	"github.com/Xenn-00/stufen-meister/internal/i18n"
	"github.com/Xenn-00/stufen-meister/internal/queue"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type CfgRedisStorage struct {
	Host     string
	Password string
	Database int
}

// RouterOptions bündelt alles, was nur einzelne Router brauchen.
type RouterOptions struct {
	TaskQueue    queue.TaskQueueClient
	FileStorage  storage.FileStorage
	TokenTTL     time.Duration
	TaskCacheTTL time.Duration
	LimiterStore CfgRedisStorage
}

// SetupRoutes richtet die API-Routen ein.
func SetupRoutes(app *fiber.App, db *pgxpool.Pool, redis *redis.Client, i18n *i18n.I18nService, paseto *utils.PasetoMaker, opts RouterOptions) {
	api := app.Group("/api/v1")

	AuthRouter(api, db, redis, i18n, paseto, opts.TokenTTL)
	UserRouter(api, db, redis, i18n, paseto)
	store := newLimiterStorage(opts.LimiterStore)
	projectGroup := ProjectRouter(api, db, redis, i18n, paseto, opts, store)
	TaskRouter(api, projectGroup, db, redis, i18n, paseto, opts, store)
	HealthRouter(api, db, redis)
}
