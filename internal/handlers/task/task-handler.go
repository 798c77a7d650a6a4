package task_handlers

import (
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/storage"
	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/Xenn-00/stufen-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/stufen-meister/internal/i18n"
	"github.com/Xenn-00/stufen-meister/internal/queue"
	task_case "github.com/Xenn-00/stufen-meister/internal/use-cases/task-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type TaskHandler struct {
	validator *validator.Validate
	service   task_case.TaskServiceContract
	i18n      internal_i18n.Service
}

func NewTaskHandler(db *pgxpool.Pool, redis *redis.Client, i18n *internal_i18n.I18nService, taskQueue queue.TaskQueueClient, fileStorage storage.FileStorage, cacheTTL time.Duration) *TaskHandler {
	return &TaskHandler{
		validator: handlers.NewValidator(),
		service:   task_case.NewTaskService(db, redis, taskQueue, fileStorage, cacheTTL),
		i18n:      i18n,
	}
}

// CreateTask nimmt multipart/form-data (Dateien unter "files") oder JSON an.
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := handlers.GetParamProjectID(c, h.validator)
	if err != nil {
		return err
	}

	var req task_dto.CreateTaskRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}
	files, err := multipartFiles(c)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateTask(c.Context(), userID, projectID, &req, files)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_create_task", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusCreated, webResp)
}

func (h *TaskHandler) GetTaskDetails(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	taskID, err := handlers.GetParamTaskID(c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.GetTaskDetails(c.Context(), userID, taskID)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_get_task", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *TaskHandler) ListProjectTasks(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := handlers.GetParamProjectID(c, h.validator)
	if err != nil {
		return err
	}

	var filter task_dto.TaskListFilter
	if err := c.QueryParser(&filter); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}
	if err := h.validator.Struct(filter); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.ListProjectTasks(c.Context(), userID, projectID, filter)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_list_tasks", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *TaskHandler) ListAssignedTasks(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListAssignedTasks(c.Context(), userID)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_list_tasks", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

// UpdateTask: multipart oder JSON. Nicht gesendete Felder bleiben unverändert.
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	taskID, err := handlers.GetParamTaskID(c, h.validator)
	if err != nil {
		return err
	}

	req := &task_dto.UpdateTaskRequest{}
	if isMultipart(c) {
		if req, err = parseUpdateForm(c); err != nil {
			return err
		}
	} else if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
		}
	}
	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	if req.AssignedUsers != nil {
		if err := h.validator.Var(*req.AssignedUsers, "unique,dive,uuid"); err != nil {
			return app_errors.NewValidationError(app_errors.ParseValidationError(err))
		}
	}

	files, err := multipartFiles(c)
	if err != nil {
		return err
	}

	resp, err := h.service.UpdateTask(c.Context(), userID, taskID, req, files)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_update_task", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	taskID, err := handlers.GetParamTaskID(c, h.validator)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Context(), userID, taskID); err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_delete_task", nil), fiber.Map{"task_id": taskID}, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

// RequestStatusUpdate legt eine Pending-Anfrage an; der Status der Aufgabe ändert sich erst bei Genehmigung.
func (h *TaskHandler) RequestStatusUpdate(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	taskID, err := handlers.GetParamTaskID(c, h.validator)
	if err != nil {
		return err
	}

	var req task_dto.RequestStatusUpdateRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.RequestStatusUpdate(c.Context(), userID, taskID, req.Status)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_request_status", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusCreated, webResp)
}

func (h *TaskHandler) ListStatusRequests(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	taskID, err := handlers.GetParamTaskID(c, h.validator)
	if err != nil {
		return err
	}

	var filter task_dto.StatusRequestFilter
	if err := c.QueryParser(&filter); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}
	if err := h.validator.Struct(filter); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.ListStatusRequests(c.Context(), userID, taskID, filter)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_list_status_requests", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *TaskHandler) ApproveStatusChange(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	requestID, err := handlers.GetParamRequestID(c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.ApproveStatusChange(c.Context(), userID, requestID)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_approve_status", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}
