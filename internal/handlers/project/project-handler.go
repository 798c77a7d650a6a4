package project_handlers

import (
	"github.com/Xenn-00/stufen-meister/internal/abstraction/storage"
	project_dto "github.com/Xenn-00/stufen-meister/internal/dtos/project-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	"github.com/Xenn-00/stufen-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/stufen-meister/internal/i18n"
	project_case "github.com/Xenn-00/stufen-meister/internal/use-cases/project-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectHandler struct {
	validator *validator.Validate
	service   project_case.ProjectServiceContract
	i18n      internal_i18n.Service
}

// Geschützt mit AuthMiddleware
func NewProjectHandler(db *pgxpool.Pool, i18n *internal_i18n.I18nService, fileStorage storage.FileStorage) *ProjectHandler {
	return &ProjectHandler{
		validator: handlers.NewValidator(),
		service:   project_case.NewProjectService(db, fileStorage),
		i18n:      i18n,
	}
}

func (h *ProjectHandler) CreateNewProject(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	var req project_dto.CreateProjectRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.CreateProject(c.Context(), userID, &req)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_create_project", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusCreated, webResp)
}

func (h *ProjectHandler) GetSelfProject(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetSelfProjects(c.Context(), userID)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_get_projects", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *ProjectHandler) GetProjectDetail(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := handlers.GetParamProjectID(c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.GetProjectDetail(c.Context(), userID, projectID)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_get_project", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := handlers.GetParamProjectID(c, h.validator)
	if err != nil {
		return err
	}

	var req project_dto.UpdateProjectRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.UpdateProject(c.Context(), userID, projectID, &req)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_update_project", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *ProjectHandler) AddAdmin(c *fiber.Ctx) error {
	return h.addMember(c, entity.ADMIN)
}

func (h *ProjectHandler) AddParticipant(c *fiber.Ctx) error {
	return h.addMember(c, entity.PARTICIPANT)
}

// addMember fügt hinzu oder ändert die Rolle, falls die Person schon Mitglied ist.
func (h *ProjectHandler) addMember(c *fiber.Ctx, role entity.UserRole) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := handlers.GetParamProjectID(c, h.validator)
	if err != nil {
		return err
	}

	var req project_dto.MemberEmailRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.AddMember(c.Context(), userID, projectID, req.Email, role)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_add_member", map[string]any{"role": role}), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := handlers.GetParamProjectID(c, h.validator)
	if err != nil {
		return err
	}

	var req project_dto.MemberEmailRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.RemoveMember(c.Context(), userID, projectID, req.Email)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_remove_member", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *ProjectHandler) UpdateStages(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := handlers.GetParamProjectID(c, h.validator)
	if err != nil {
		return err
	}

	var req project_dto.UpdateStagesRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.UpdateStages(c.Context(), userID, projectID, req.Stages)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_update_stages", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	projectID, err := handlers.GetParamProjectID(c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.DeleteProject(c.Context(), userID, projectID)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_delete_project", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}
