package task_case

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/storage"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func taskCacheKey(taskID string) string {
	return fmt.Sprintf("task:%s", taskID)
}

// getTaskAndProject lädt die Task und ihr Projekt.
func (s *TaskService) getTaskAndProject(ctx context.Context, taskID string) (*entity.TaskEntity, *entity.ProjectEntity, *app_errors.AppError) {
	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	project, err := s.projectRepo.GetProjectByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

// verifyProjectAdmin prüft, ob userID in admin_users des Projekts steht.
func verifyProjectAdmin(project *entity.ProjectEntity, userID string) *app_errors.AppError {
	if !project.IsAdmin(userID) {
		return app_errors.NewForbiddenError("forbidden.not_project_admin")
	}
	return nil
}

// verifyTaskReader: Admins, Teilnehmer und Zugewiesene dürfen lesen.
func verifyTaskReader(project *entity.ProjectEntity, task *entity.TaskEntity, userID string) *app_errors.AppError {
	if !project.IsMember(userID) && !task.IsAssignee(userID) {
		return app_errors.NewForbiddenError("forbidden.not_project_member")
	}
	return nil
}

func verifyAssigneesAreMembers(project *entity.ProjectEntity, userIDs []string) *app_errors.AppError {
	for _, id := range userIDs {
		if !project.IsMember(id) {
			return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "task.assignee_not_member", fmt.Errorf("user %s is not a member of project %s", id, project.ID))
		}
	}
	return nil
}

// saveAttachments legt alle Dateien ab. Scheitert eine, werden die bereits gespeicherten wieder entfernt.
func (s *TaskService) saveAttachments(ctx context.Context, files []*multipart.FileHeader) ([]entity.TaskAttachment, *app_errors.AppError) {
	attachments := make([]entity.TaskAttachment, 0, len(files))
	for _, f := range files {
		a, err := s.storage.Save(ctx, f)
		if err != nil {
			s.removeAttachments(ctx, attachments)
			if errors.Is(err, storage.ErrFileTooLarge) {
				return nil, app_errors.NewAppError(fiber.StatusRequestEntityTooLarge, app_errors.ErrValidation, "request.file_too_large", err)
			}
			return nil, app_errors.NewInternalError(err)
		}
		attachments = append(attachments, *a)
	}
	return attachments, nil
}

// removeAttachments ist best-effort: Fehler werden nur protokolliert.
func (s *TaskService) removeAttachments(ctx context.Context, attachments []entity.TaskAttachment) {
	for _, a := range attachments {
		if err := s.storage.Remove(ctx, a.StoragePath); err != nil {
			log.Warn().Err(err).Str("path", a.StoragePath).Msg("Anhang konnte nicht entfernt werden")
		}
	}
}

func (s *TaskService) invalidateTask(ctx context.Context, taskID string) {
	if err := s.cache.Del(ctx, taskCacheKey(taskID)); err != nil {
		log.Warn().Err(err).Str("task_id", taskID).Msg("Task-Cache konnte nicht invalidiert werden")
	}
}
