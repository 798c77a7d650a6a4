package project_case

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/storage"
	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	project_dto "github.com/Xenn-00/stufen-meister/internal/dtos/project-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	project_repo "github.com/Xenn-00/stufen-meister/internal/repo/project-repo"
	task_repo "github.com/Xenn-00/stufen-meister/internal/repo/task-repo"
	user_repo "github.com/Xenn-00/stufen-meister/internal/repo/user-repo"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type ProjectService struct {
	repo      project_repo.ProjectRepoContract
	taskRepo  task_repo.TaskRepoContract
	userRepo  user_repo.UserRepoContract
	txManager tx.TxManager
	storage   storage.FileStorage
}

func NewProjectService(db *pgxpool.Pool, fileStorage storage.FileStorage) ProjectServiceContract {
	return &ProjectService{
		repo:      project_repo.NewProjectRepo(db),
		taskRepo:  task_repo.NewTaskRepo(db),
		userRepo:  user_repo.NewUserRepo(db),
		txManager: tx.NewPgxTxManager(db),
		storage:   fileStorage,
	}
}

// CreateProject: der Ersteller wird Admin. Projekt und Mitgliedschaft entstehen in einer Transaktion.
func (s *ProjectService) CreateProject(ctx context.Context, userID string, req *project_dto.CreateProjectRequest) (*project_dto.ProjectResponse, *app_errors.AppError) {
	stages := entity.DefaultStages
	if len(req.Stages) > 0 {
		normalized, err := normalizeStages(req.Stages)
		if err != nil {
			return nil, err
		}
		stages = normalized
	}

	projectID, uuidErr := uuid.NewV7()
	if uuidErr != nil {
		return nil, app_errors.NewInternalError(uuidErr)
	}

	now := time.Now()
	project := &entity.ProjectEntity{
		ID:          projectID.String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatorID:   userID,
		Stages:      stages,
		AdminUsers:  []string{userID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	if err := s.repo.InsertProject(ctx, t, project); err != nil {
		return nil, err
	}
	if err := s.repo.InsertProjectMember(ctx, t, project.ID, userID, entity.ADMIN); err != nil {
		return nil, err
	}
	if err := t.Commit(ctx); err != nil {
		log.Error().Err(err.Err).Str("project_id", project.ID).Msg("Fehler beim Ausführen der DB-Transaktion")
		return nil, err
	}

	return project_dto.NewProjectResponse(project, entity.ADMIN, nil), nil
}

func (s *ProjectService) GetSelfProjects(ctx context.Context, userID string) ([]*project_dto.ProjectResponse, *app_errors.AppError) {
	projects, err := s.repo.GetSelfProjects(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]*project_dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, &project_dto.ProjectResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatorID:   p.CreatorID,
			Role:        p.Role,
			CreatedAt:   p.CreatedAt,
		})
	}
	return resp, nil
}

// GetProjectDetail nur für Mitglieder.
func (s *ProjectService) GetProjectDetail(ctx context.Context, userID, projectID string) (*project_dto.ProjectResponse, *app_errors.AppError) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	role := project.RoleOf(userID)
	if role == "" {
		return nil, app_errors.NewForbiddenError("forbidden.not_project_member")
	}

	members, err := s.repo.GetProjectMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return project_dto.NewProjectResponse(project, role, members), nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID string, req *project_dto.UpdateProjectRequest) (*project_dto.ProjectResponse, *app_errors.AppError) {
	if req.Name == nil && req.Description == nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", nil)
	}

	if _, err := s.getAdminProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := s.repo.UpdateProject(ctx, projectID, req.Name, req.Description, time.Now()); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return project_dto.NewProjectResponse(updated, entity.ADMIN, nil), nil
}

// AddMember fügt den Benutzer mit der E-Mail als Admin oder Teilnehmer hinzu.
// Ist er bereits Mitglied, wird nur die Rolle gesetzt. Der Ersteller bleibt immer Admin.
func (s *ProjectService) AddMember(ctx context.Context, userID, projectID, email string, role entity.UserRole) (*project_dto.MemberResponse, *app_errors.AppError) {
	if !role.IsValid() {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "project.invalid_role", fmt.Errorf("role %q", role))
	}

	project, err := s.getAdminProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.ID == project.CreatorID && role != entity.ADMIN {
		return nil, app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "project.creator_protected", nil)
	}

	if err := s.repo.UpsertProjectMember(ctx, projectID, user.ID, role); err != nil {
		return nil, err
	}

	return &project_dto.MemberResponse{
		ProjectID: projectID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      role,
	}, nil
}

// RemoveMember entfernt die Mitgliedschaft und alle Zuweisungen des Benutzers an Tasks dieses Projekts.
func (s *ProjectService) RemoveMember(ctx context.Context, userID, projectID, email string) (*project_dto.MemberResponse, *app_errors.AppError) {
	project, err := s.getAdminProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.ID == project.CreatorID {
		return nil, app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "project.creator_protected", nil)
	}

	removed, err := s.repo.RemoveProjectMember(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, app_errors.NewNotFoundError("project.member_not_found")
	}

	return &project_dto.MemberResponse{
		ProjectID: projectID,
		UserID:    user.ID,
		Email:     user.Email,
	}, nil
}

// UpdateStages ersetzt die Stufenliste. Bestehende Task-Status werden nicht angepasst.
func (s *ProjectService) UpdateStages(ctx context.Context, userID, projectID string, stages []string) (*project_dto.StagesResponse, *app_errors.AppError) {
	normalized, err := normalizeStages(stages)
	if err != nil {
		return nil, err
	}

	if _, err := s.getAdminProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStages(ctx, projectID, normalized, time.Now()); err != nil {
		return nil, err
	}

	return &project_dto.StagesResponse{ProjectID: projectID, Stages: normalized}, nil
}

// DeleteProject darf nur der Ersteller. Tasks, Historie, Anhänge und Anträge werden per Cascade
// gelöscht; die Dateien danach best-effort entfernt.
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID string) (*project_dto.DeleteProjectResponse, *app_errors.AppError) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != userID {
		return nil, app_errors.NewForbiddenError("forbidden.not_project_creator")
	}

	paths, err := s.taskRepo.ListAttachmentPathsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	deleted, err := s.repo.DeleteProject(ctx, t, projectID)
	if err != nil {
		return nil, err
	}
	if err := t.Commit(ctx); err != nil {
		return nil, err
	}

	for _, p := range paths {
		if rmErr := s.storage.Remove(ctx, p); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", p).Str("project_id", projectID).Msg("Anhang konnte nicht entfernt werden")
		}
	}

	return &project_dto.DeleteProjectResponse{ProjectID: projectID, DeletedTasks: int(deleted)}, nil
}
