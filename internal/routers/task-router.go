package routers

import (
	"time"

	task_handlers "github.com/Xenn-00/stufen-meister/internal/handlers/task"
	"github.com/Xenn-00/stufen-meister/internal/i18n"
	"github.com/Xenn-00/stufen-meister/internal/middleware"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// TaskRouter: projectGroup trägt bereits die AuthMiddleware.
func TaskRouter(api fiber.Router, projectGroup fiber.Router, db *pgxpool.Pool, redis *redis.Client, i18n *i18n.I18nService, paseto *utils.PasetoMaker, opts RouterOptions, store fiber.Storage) {
	taskHandler := task_handlers.NewTaskHandler(db, redis, i18n, opts.TaskQueue, opts.FileStorage, opts.TaskCacheTTL)

	projectGroup.Post("/:project_id/tasks", taskHandler.CreateTask)
	projectGroup.Get("/:project_id/tasks", taskHandler.ListProjectTasks)

	r := api.Group("/tasks", middleware.AuthMiddleware(paseto, redis))
	r.Get("/assigned", taskHandler.ListAssignedTasks)
	r.Post("/status-requests/:request_id/approve",
		userLimiter("approve", "request_id", 10, 30*time.Second, store),
		taskHandler.ApproveStatusChange)
	r.Get("/:task_id", taskHandler.GetTaskDetails)
	r.Put("/:task_id", taskHandler.UpdateTask)
	r.Delete("/:task_id", taskHandler.DeleteTask)
	r.Post("/:task_id/request-status",
		userLimiter("request-status", "task_id", 5, 30*time.Second, store),
		taskHandler.RequestStatusUpdate)
	r.Get("/:task_id/status-requests", taskHandler.ListStatusRequests)
}
