package use_cases

import (
	"context"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	auth_repo "github.com/Xenn-00/stufen-meister/internal/repo/auth-repo"
	project_repo "github.com/Xenn-00/stufen-meister/internal/repo/project-repo"
	status_request_repo "github.com/Xenn-00/stufen-meister/internal/repo/status-request-repo"
	task_repo "github.com/Xenn-00/stufen-meister/internal/repo/task-repo"
	user_repo "github.com/Xenn-00/stufen-meister/internal/repo/user-repo"
	"github.com/stretchr/testify/mock"
)

var (
	_ task_repo.TaskRepoContract                    = (*MockTaskRepo)(nil)
	_ status_request_repo.StatusRequestRepoContract = (*MockStatusRequestRepo)(nil)
	_ project_repo.ProjectRepoContract              = (*MockProjectRepo)(nil)
	_ user_repo.UserRepoContract                    = (*MockUserRepo)(nil)
	_ auth_repo.AuthRepoContract                    = (*MockAuthRepo)(nil)
)

func appErr(args mock.Arguments, i int) *app_errors.AppError {
	return ret[*app_errors.AppError](args, i)
}

// Task repo

type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) InsertTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError {
	args := m.Called(ctx, t, task)
	return appErr(args, 0)
}

func (m *MockTaskRepo) GetTaskByID(ctx context.Context, taskID string) (*entity.TaskEntity, *app_errors.AppError) {
	args := m.Called(ctx, taskID)
	return ret[*entity.TaskEntity](args, 0), appErr(args, 1)
}

func (m *MockTaskRepo) CountTasksByProject(ctx context.Context, projectID string, status *string) (int64, *app_errors.AppError) {
	args := m.Called(ctx, projectID, status)
	return ret[int64](args, 0), appErr(args, 1)
}

func (m *MockTaskRepo) ListTasksByProject(ctx context.Context, projectID string, filter *task_dto.TaskListFilter) ([]entity.TaskEntity, *app_errors.AppError) {
	args := m.Called(ctx, projectID, filter)
	return ret[[]entity.TaskEntity](args, 0), appErr(args, 1)
}

func (m *MockTaskRepo) ListTasksByAssignee(ctx context.Context, userID string) ([]entity.AssignedTask, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return ret[[]entity.AssignedTask](args, 0), appErr(args, 1)
}

func (m *MockTaskRepo) LockTaskStatus(ctx context.Context, t tx.Tx, taskID string) (string, *app_errors.AppError) {
	args := m.Called(ctx, t, taskID)
	return args.String(0), appErr(args, 1)
}

func (m *MockTaskRepo) UpdateTaskFields(ctx context.Context, t tx.Tx, taskID string, update *entity.TaskUpdate, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, t, taskID, update, at)
	return appErr(args, 0)
}

func (m *MockTaskRepo) ReplaceAssignees(ctx context.Context, t tx.Tx, taskID string, userIDs []string) *app_errors.AppError {
	args := m.Called(ctx, t, taskID, userIDs)
	return appErr(args, 0)
}

func (m *MockTaskRepo) AppendStatusHistory(ctx context.Context, t tx.Tx, taskID, status string, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, t, taskID, status, at)
	return appErr(args, 0)
}

func (m *MockTaskRepo) InsertAttachments(ctx context.Context, t tx.Tx, taskID string, attachments []entity.TaskAttachment) *app_errors.AppError {
	args := m.Called(ctx, t, taskID, attachments)
	return appErr(args, 0)
}

func (m *MockTaskRepo) DeleteTask(ctx context.Context, t tx.Tx, taskID string) ([]entity.TaskAttachment, *app_errors.AppError) {
	args := m.Called(ctx, t, taskID)
	return ret[[]entity.TaskAttachment](args, 0), appErr(args, 1)
}

func (m *MockTaskRepo) ListAttachmentPathsByProject(ctx context.Context, projectID string) ([]string, *app_errors.AppError) {
	args := m.Called(ctx, projectID)
	return ret[[]string](args, 0), appErr(args, 1)
}

// Status request repo

type MockStatusRequestRepo struct {
	mock.Mock
}

func (m *MockStatusRequestRepo) InsertStatusRequest(ctx context.Context, req *entity.StatusChangeRequestEntity) *app_errors.AppError {
	args := m.Called(ctx, req)
	return appErr(args, 0)
}

func (m *MockStatusRequestRepo) GetStatusRequestByID(ctx context.Context, requestID string) (*entity.StatusChangeRequestEntity, *app_errors.AppError) {
	args := m.Called(ctx, requestID)
	return ret[*entity.StatusChangeRequestEntity](args, 0), appErr(args, 1)
}

func (m *MockStatusRequestRepo) ApproveStatusRequest(ctx context.Context, t tx.Tx, requestID, adminID string, at time.Time) (*entity.StatusChangeRequestEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, requestID, adminID, at)
	return ret[*entity.StatusChangeRequestEntity](args, 0), appErr(args, 1)
}

func (m *MockStatusRequestRepo) ListStatusRequestsByTask(ctx context.Context, taskID string, state *entity.RequestState) ([]entity.StatusChangeRequestEntity, *app_errors.AppError) {
	args := m.Called(ctx, taskID, state)
	return ret[[]entity.StatusChangeRequestEntity](args, 0), appErr(args, 1)
}

func (m *MockStatusRequestRepo) ListStalePendingRequests(ctx context.Context, createdBefore time.Time) ([]entity.PendingRequestDigest, *app_errors.AppError) {
	args := m.Called(ctx, createdBefore)
	return ret[[]entity.PendingRequestDigest](args, 0), appErr(args, 1)
}

// Project repo

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) InsertProject(ctx context.Context, t tx.Tx, project *entity.ProjectEntity) *app_errors.AppError {
	args := m.Called(ctx, t, project)
	return appErr(args, 0)
}

func (m *MockProjectRepo) InsertProjectMember(ctx context.Context, t tx.Tx, projectID, userID string, role entity.UserRole) *app_errors.AppError {
	args := m.Called(ctx, t, projectID, userID, role)
	return appErr(args, 0)
}

func (m *MockProjectRepo) GetProjectByID(ctx context.Context, projectID string) (*entity.ProjectEntity, *app_errors.AppError) {
	args := m.Called(ctx, projectID)
	return ret[*entity.ProjectEntity](args, 0), appErr(args, 1)
}

func (m *MockProjectRepo) GetProjectMembers(ctx context.Context, projectID string) ([]entity.ProjectMember, *app_errors.AppError) {
	args := m.Called(ctx, projectID)
	return ret[[]entity.ProjectMember](args, 0), appErr(args, 1)
}

func (m *MockProjectRepo) GetProjectAdminContacts(ctx context.Context, projectID string) ([]entity.UserContact, *app_errors.AppError) {
	args := m.Called(ctx, projectID)
	return ret[[]entity.UserContact](args, 0), appErr(args, 1)
}

func (m *MockProjectRepo) GetSelfProjects(ctx context.Context, userID string) ([]entity.ProjectSelf, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return ret[[]entity.ProjectSelf](args, 0), appErr(args, 1)
}

func (m *MockProjectRepo) UpdateProject(ctx context.Context, projectID string, name, description *string, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, projectID, name, description, at)
	return appErr(args, 0)
}

func (m *MockProjectRepo) UpsertProjectMember(ctx context.Context, projectID, userID string, role entity.UserRole) *app_errors.AppError {
	args := m.Called(ctx, projectID, userID, role)
	return appErr(args, 0)
}

func (m *MockProjectRepo) RemoveProjectMember(ctx context.Context, projectID, userID string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), appErr(args, 1)
}

func (m *MockProjectRepo) UpdateStages(ctx context.Context, projectID string, stages []string, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, projectID, stages, at)
	return appErr(args, 0)
}

func (m *MockProjectRepo) DeleteProject(ctx context.Context, t tx.Tx, projectID string) (int64, *app_errors.AppError) {
	args := m.Called(ctx, t, projectID)
	return ret[int64](args, 0), appErr(args, 1)
}

// User repo

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return ret[*entity.UserEntity](args, 0), appErr(args, 1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, email)
	return ret[*entity.UserEntity](args, 0), appErr(args, 1)
}

func (m *MockUserRepo) UpdateSelfProfile(ctx context.Context, userID string, model entity.UserUpdate, at time.Time) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID, model, at)
	return ret[*entity.UserEntity](args, 0), appErr(args, 1)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, userID, passwordHash, at)
	return appErr(args, 0)
}

// Auth repo

type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) CountUsers(ctx context.Context, filter entity.UserCountFilter) (int64, *app_errors.AppError) {
	args := m.Called(ctx, filter)
	return ret[int64](args, 0), appErr(args, 1)
}

func (m *MockAuthRepo) SaveUsers(ctx context.Context, model entity.UserEntity) (string, *app_errors.AppError) {
	args := m.Called(ctx, model)
	return args.String(0), appErr(args, 1)
}

func (m *MockAuthRepo) FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, email)
	return ret[*entity.UserEntity](args, 0), appErr(args, 1)
}

func (m *MockAuthRepo) FindByUsername(ctx context.Context, username string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, username)
	return ret[*entity.UserEntity](args, 0), appErr(args, 1)
}
