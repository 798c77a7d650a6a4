package project_case

import (
	"context"

	project_dto "github.com/Xenn-00/stufen-meister/internal/dtos/project-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

type ProjectServiceContract interface {
	CreateProject(ctx context.Context, userID string, req *project_dto.CreateProjectRequest) (*project_dto.ProjectResponse, *app_errors.AppError)
	GetSelfProjects(ctx context.Context, userID string) ([]*project_dto.ProjectResponse, *app_errors.AppError)
	GetProjectDetail(ctx context.Context, userID, projectID string) (*project_dto.ProjectResponse, *app_errors.AppError)
	UpdateProject(ctx context.Context, userID, projectID string, req *project_dto.UpdateProjectRequest) (*project_dto.ProjectResponse, *app_errors.AppError)
	AddMember(ctx context.Context, userID, projectID, email string, role entity.UserRole) (*project_dto.MemberResponse, *app_errors.AppError)
	RemoveMember(ctx context.Context, userID, projectID, email string) (*project_dto.MemberResponse, *app_errors.AppError)
	UpdateStages(ctx context.Context, userID, projectID string, stages []string) (*project_dto.StagesResponse, *app_errors.AppError)
	DeleteProject(ctx context.Context, userID, projectID string) (*project_dto.DeleteProjectResponse, *app_errors.AppError)
}
