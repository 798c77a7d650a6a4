package task_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

// TaskRepoContract: Methoden mit tx.Tx laufen innerhalb der Transaktion des Aufrufers.
type TaskRepoContract interface {
	InsertTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError
	GetTaskByID(ctx context.Context, taskID string) (*entity.TaskEntity, *app_errors.AppError)
	CountTasksByProject(ctx context.Context, projectID string, status *string) (int64, *app_errors.AppError)
	ListTasksByProject(ctx context.Context, projectID string, filter *task_dto.TaskListFilter) ([]entity.TaskEntity, *app_errors.AppError)
	ListTasksByAssignee(ctx context.Context, userID string) ([]entity.AssignedTask, *app_errors.AppError)
	LockTaskStatus(ctx context.Context, t tx.Tx, taskID string) (string, *app_errors.AppError)
	UpdateTaskFields(ctx context.Context, t tx.Tx, taskID string, update *entity.TaskUpdate, at time.Time) *app_errors.AppError
	ReplaceAssignees(ctx context.Context, t tx.Tx, taskID string, userIDs []string) *app_errors.AppError
	AppendStatusHistory(ctx context.Context, t tx.Tx, taskID, status string, at time.Time) *app_errors.AppError
	InsertAttachments(ctx context.Context, t tx.Tx, taskID string, attachments []entity.TaskAttachment) *app_errors.AppError
	DeleteTask(ctx context.Context, t tx.Tx, taskID string) ([]entity.TaskAttachment, *app_errors.AppError)
	ListAttachmentPathsByProject(ctx context.Context, projectID string) ([]string, *app_errors.AppError)
}
