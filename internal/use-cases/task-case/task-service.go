package task_case

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/cache"
	"github.com/Xenn-00/stufen-meister/internal/abstraction/storage"
	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	"github.com/Xenn-00/stufen-meister/internal/dtos"
	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/Xenn-00/stufen-meister/internal/queue"
	project_repo "github.com/Xenn-00/stufen-meister/internal/repo/project-repo"
	status_request_repo "github.com/Xenn-00/stufen-meister/internal/repo/status-request-repo"
	task_repo "github.com/Xenn-00/stufen-meister/internal/repo/task-repo"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	defaultPageLimit = 20
)

type TaskService struct {
	repo        task_repo.TaskRepoContract
	requestRepo status_request_repo.StatusRequestRepoContract
	projectRepo project_repo.ProjectRepoContract
	txManager   tx.TxManager
	taskQueue   queue.TaskQueueClient
	cache       cache.Cache
	storage     storage.FileStorage
	cacheTTL    time.Duration
}

func NewTaskService(db *pgxpool.Pool, redis *redis.Client, taskQueue queue.TaskQueueClient, fileStorage storage.FileStorage, cacheTTL time.Duration) TaskServiceContract {
	return &TaskService{
		repo:        task_repo.NewTaskRepo(db),
		requestRepo: status_request_repo.NewStatusRequestRepo(db),
		projectRepo: project_repo.NewProjectRepo(db),
		txManager:   tx.NewPgxTxManager(db),
		taskQueue:   taskQueue,
		cache:       cache.NewRedisCache(redis),
		storage:     fileStorage,
		cacheTTL:    cacheTTL,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, userID, projectID string, req *task_dto.CreateTaskRequest, files []*multipart.FileHeader) (*task_dto.TaskResponse, *app_errors.AppError) {
	project, err := s.projectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := verifyProjectAdmin(project, userID); err != nil {
		return nil, err
	}

	// Ohne Angabe startet die Task in der ersten Stufe des Projekts.
	status := req.Status
	if status == "" && len(project.Stages) > 0 {
		status = project.Stages[0]
	}
	if !project.HasStage(status) {
		return nil, app_errors.NewInvalidStatusError(nil)
	}

	if err := verifyAssigneesAreMembers(project, req.AssignedUsers); err != nil {
		return nil, err
	}

	taskID, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewInternalError(idErr)
	}

	attachments, err := s.saveAttachments(ctx, files)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &entity.TaskEntity{
		ID:            taskID.String(),
		ProjectID:     projectID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		AssignedUsers: req.AssignedUsers,
		StatusHistory: []entity.StatusHistoryEntry{{Status: status, Timestamp: now}},
		Attachments:   attachments,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.insertTask(ctx, task); err != nil {
		s.removeAttachments(ctx, attachments)
		return nil, err
	}

	return task_dto.NewTaskResponse(task), nil
}

func (s *TaskService) insertTask(ctx context.Context, task *entity.TaskEntity) *app_errors.AppError {
	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer t.Rollback(ctx)

	if err := s.repo.InsertTask(ctx, t, task); err != nil {
		return err
	}
	return t.Commit(ctx)
}

func (s *TaskService) GetTaskDetails(ctx context.Context, userID, taskID string) (*task_dto.TaskResponse, *app_errors.AppError) {
	var task entity.TaskEntity
	hit, cacheErr := s.cache.Get(ctx, taskCacheKey(taskID), &task)
	if cacheErr != nil {
		log.Warn().Err(cacheErr.Err).Str("task_id", taskID).Msg("Task-Cache nicht lesbar, lade aus der Datenbank")
	}

	if !hit {
		fromDB, err := s.repo.GetTaskByID(ctx, taskID)
		if err != nil {
			return nil, err
		}
		task = *fromDB

		if err := s.cache.Set(ctx, taskCacheKey(taskID), &task, s.cacheTTL); err != nil {
			log.Warn().Err(err.Err).Str("task_id", taskID).Msg("Task konnte nicht gecacht werden")
		}
	}

	project, err := s.projectRepo.GetProjectByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := verifyTaskReader(project, &task, userID); err != nil {
		return nil, err
	}

	return task_dto.NewTaskResponse(&task), nil
}

func (s *TaskService) ListProjectTasks(ctx context.Context, userID, projectID string, filter task_dto.TaskListFilter) (*task_dto.TaskListResponse, *app_errors.AppError) {
	project, err := s.projectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsMember(userID) {
		return nil, app_errors.NewForbiddenError("forbidden.not_project_member")
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}

	tasks, err := s.repo.ListTasksByProject(ctx, projectID, &filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountTasksByProject(ctx, projectID, filter.Status)
	if err != nil {
		return nil, err
	}

	items := make([]task_dto.TaskListItem, 0, len(tasks))
	for _, t := range tasks {
		assigned := t.AssignedUsers
		if assigned == nil {
			assigned = []string{}
		}
		items = append(items, task_dto.TaskListItem{
			ID:            t.ID,
			Title:         t.Title,
			Status:        t.Status,
			AssignedUsers: assigned,
			UpdatedAt:     t.UpdatedAt,
		})
	}

	return &task_dto.TaskListResponse{
		Items: items,
		Meta:  dtos.NewPaginationMeta(filter.Page, filter.Limit, int(total)),
	}, nil
}

func (s *TaskService) ListAssignedTasks(ctx context.Context, userID string) ([]entity.AssignedTask, *app_errors.AppError) {
	tasks, err := s.repo.ListTasksByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entity.AssignedTask{}
	}
	return tasks, nil
}

// UpdateTask ist alles-oder-nichts: jede Prüfung läuft vor dem ersten Schreibzugriff.
// Admins dürfen alle Felder ändern, Zugewiesene nur Titel, Beschreibung und Anhänge.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, req *task_dto.UpdateTaskRequest, files []*multipart.FileHeader) (*task_dto.TaskResponse, *app_errors.AppError) {
	if req.IsEmpty() && len(files) == 0 {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", nil)
	}

	task, project, err := s.getTaskAndProject(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !project.IsAdmin(userID) {
		if req.Status != nil || req.AssignedUsers != nil {
			return nil, app_errors.NewForbiddenError("forbidden.not_project_admin")
		}
		if !task.IsAssignee(userID) {
			return nil, app_errors.NewForbiddenError("forbidden.not_task_assignee")
		}
	}

	if req.Status != nil && !project.HasStage(*req.Status) {
		return nil, app_errors.NewInvalidStatusError(nil)
	}
	if req.AssignedUsers != nil {
		if err := verifyAssigneesAreMembers(project, *req.AssignedUsers); err != nil {
			return nil, err
		}
	}

	attachments, err := s.saveAttachments(ctx, files)
	if err != nil {
		return nil, err
	}

	if err := s.applyTaskUpdate(ctx, taskID, req, attachments); err != nil {
		s.removeAttachments(ctx, attachments)
		return nil, err
	}

	s.invalidateTask(ctx, taskID)

	updated, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return task_dto.NewTaskResponse(updated), nil
}

func (s *TaskService) applyTaskUpdate(ctx context.Context, taskID string, req *task_dto.UpdateTaskRequest, attachments []entity.TaskAttachment) *app_errors.AppError {
	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer t.Rollback(ctx)

	// Zeilensperre: konkurrierende Genehmigungen warten, damit die Historie nicht doppelt oder verloren geschrieben wird.
	currentStatus, err := s.repo.LockTaskStatus(ctx, t, taskID)
	if err != nil {
		return err
	}

	now := time.Now()
	update := &entity.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if err := s.repo.UpdateTaskFields(ctx, t, taskID, update, now); err != nil {
		return err
	}

	if req.AssignedUsers != nil {
		if err := s.repo.ReplaceAssignees(ctx, t, taskID, *req.AssignedUsers); err != nil {
			return err
		}
	}

	if req.Status != nil && *req.Status != currentStatus {
		if err := s.repo.AppendStatusHistory(ctx, t, taskID, *req.Status, now); err != nil {
			return err
		}
	}

	if err := s.repo.InsertAttachments(ctx, t, taskID, attachments); err != nil {
		return err
	}

	return t.Commit(ctx)
}

// DeleteTask gilt als erfolgreich, sobald der Datensatz gelöscht ist; Dateien werden best-effort entfernt.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) *app_errors.AppError {
	_, project, err := s.getTaskAndProject(ctx, taskID)
	if err != nil {
		return err
	}
	if err := verifyProjectAdmin(project, userID); err != nil {
		return err
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer t.Rollback(ctx)

	attachments, err := s.repo.DeleteTask(ctx, t, taskID)
	if err != nil {
		return err
	}
	if err := t.Commit(ctx); err != nil {
		return err
	}

	s.invalidateTask(ctx, taskID)
	s.removeAttachments(ctx, attachments)
	return nil
}
