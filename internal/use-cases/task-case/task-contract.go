package task_case

import (
	"context"
	"mime/multipart"

	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

type TaskServiceContract interface {
	CreateTask(ctx context.Context, userID, projectID string, req *task_dto.CreateTaskRequest, files []*multipart.FileHeader) (*task_dto.TaskResponse, *app_errors.AppError)
	GetTaskDetails(ctx context.Context, userID, taskID string) (*task_dto.TaskResponse, *app_errors.AppError)
	ListProjectTasks(ctx context.Context, userID, projectID string, filter task_dto.TaskListFilter) (*task_dto.TaskListResponse, *app_errors.AppError)
	ListAssignedTasks(ctx context.Context, userID string) ([]entity.AssignedTask, *app_errors.AppError)
	UpdateTask(ctx context.Context, userID, taskID string, req *task_dto.UpdateTaskRequest, files []*multipart.FileHeader) (*task_dto.TaskResponse, *app_errors.AppError)
	DeleteTask(ctx context.Context, userID, taskID string) *app_errors.AppError

	RequestStatusUpdate(ctx context.Context, userID, taskID, requestedStatus string) (*task_dto.StatusChangeRequestResponse, *app_errors.AppError)
	ApproveStatusChange(ctx context.Context, userID, requestID string) (*task_dto.ApproveStatusChangeResponse, *app_errors.AppError)
	ListStatusRequests(ctx context.Context, userID, taskID string, filter task_dto.StatusRequestFilter) ([]*task_dto.StatusChangeRequestResponse, *app_errors.AppError)
}
