package routers

import (
	"time"

	auth_handlers "github.com/Xenn-00/stufen-meister/internal/handlers/auth"
	"github.com/Xenn-00/stufen-meister/internal/i18n"
	"github.com/Xenn-00/stufen-meister/internal/middleware"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// AuthRouter richtet die Authentifizierungsrouten ein.
func AuthRouter(api fiber.Router, db *pgxpool.Pool, redis *redis.Client, i18n *i18n.I18nService, paseto *utils.PasetoMaker, tokenTTL time.Duration) {
	r := api.Group("/auth")
	authHandler := auth_handlers.NewAuthHandler(db, redis, i18n, paseto, tokenTTL)
	auth := middleware.AuthMiddleware(paseto, redis)

	r.Post("/register", authHandler.RegisterUser)
	r.Post("/login", authHandler.LoginUser)
	r.Delete("/logout", auth, authHandler.LogoutUser)
	r.Delete("/logout-all", auth, authHandler.LogoutAllDevices)
	r.Get("/devices", auth, authHandler.ListAllUserDevices)
	r.Post("/change-password", auth, authHandler.ChangePassword)
}
