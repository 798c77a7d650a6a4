package project_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

type ProjectRepoContract interface {
	InsertProject(ctx context.Context, t tx.Tx, project *entity.ProjectEntity) *app_errors.AppError
	InsertProjectMember(ctx context.Context, t tx.Tx, projectID, userID string, role entity.UserRole) *app_errors.AppError
	GetProjectByID(ctx context.Context, projectID string) (*entity.ProjectEntity, *app_errors.AppError)
	GetProjectMembers(ctx context.Context, projectID string) ([]entity.ProjectMember, *app_errors.AppError)
	GetProjectAdminContacts(ctx context.Context, projectID string) ([]entity.UserContact, *app_errors.AppError)
	GetSelfProjects(ctx context.Context, userID string) ([]entity.ProjectSelf, *app_errors.AppError)
	UpdateProject(ctx context.Context, projectID string, name, description *string, at time.Time) *app_errors.AppError
	UpsertProjectMember(ctx context.Context, projectID, userID string, role entity.UserRole) *app_errors.AppError
	RemoveProjectMember(ctx context.Context, projectID, userID string) (bool, *app_errors.AppError)
	UpdateStages(ctx context.Context, projectID string, stages []string, at time.Time) *app_errors.AppError
	DeleteProject(ctx context.Context, t tx.Tx, projectID string) (int64, *app_errors.AppError)
}
