package routers

import (
	"time"

	project_handlers "github.com/Xenn-00/stufen-meister/internal/handlers/project"
	"github.com/Xenn-00/stufen-meister/internal/i18n"
	"github.com/Xenn-00/stufen-meister/internal/middleware"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ProjectRouter gibt die Gruppe zurück, damit TaskRouter die Aufgaben eines Projekts darunter hängen kann.
func ProjectRouter(api fiber.Router, db *pgxpool.Pool, redis *redis.Client, i18n *i18n.I18nService, paseto *utils.PasetoMaker, opts RouterOptions, store fiber.Storage) fiber.Router {
	r := api.Group("/project", middleware.AuthMiddleware(paseto, redis))
	projectHandler := project_handlers.NewProjectHandler(db, i18n, opts.FileStorage)

	memberLimit := userLimiter("member", "project_id", 20, time.Minute, store)

	r.Post("/", projectHandler.CreateNewProject)
	r.Get("/me", projectHandler.GetSelfProject)
	r.Get("/:project_id", projectHandler.GetProjectDetail)
	r.Patch("/:project_id", projectHandler.UpdateProject)
	r.Delete("/:project_id", projectHandler.DeleteProject)
	r.Post("/:project_id/admin", memberLimit, projectHandler.AddAdmin)
	r.Post("/:project_id/participant", memberLimit, projectHandler.AddParticipant)
	r.Delete("/:project_id/member", memberLimit, projectHandler.RemoveMember)
	r.Put("/:project_id/stages", projectHandler.UpdateStages)

	return r
}
