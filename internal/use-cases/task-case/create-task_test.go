package task_case

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/storage"
	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTask_DefaultsToFirstStage(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.repo.On("InsertTask", ctx, m.tx, mock.MatchedBy(func(task *entity.TaskEntity) bool {
		return task.Status == "Assigned" && len(task.StatusHistory) == 1 && task.StatusHistory[0].Status == "Assigned"
	})).Return(nil)

	resp, err := service.CreateTask(ctx, "admin-1", "project-1", &task_dto.CreateTaskRequest{
		Title:         "Landing page",
		AssignedUsers: []string{"part-1"},
	}, nil)

	require.Nil(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Assigned", resp.Status)
	assert.Equal(t, []string{"part-1"}, resp.AssignedUsers)
	assert.Equal(t, "admin-1", resp.CreatedBy)
	assert.Empty(t, resp.Attachments)
	m.tx.AssertCalled(t, "Commit", ctx)
	m.assertExpectations(t)
}

func TestCreateTask_WithExplicitStatusAndFiles(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	file := &multipart.FileHeader{Filename: "brief.pdf", Size: 10}
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.storage.On("Save", ctx, file).Return(&entity.TaskAttachment{
		OriginalName: "brief.pdf",
		StoredName:   "abc_brief.pdf",
		StoragePath:  "/uploads/abc_brief.pdf",
		UploadedAt:   time.Now(),
	}, nil)
	m.repo.On("InsertTask", ctx, m.tx, mock.MatchedBy(func(task *entity.TaskEntity) bool {
		return task.Status == "Review" && len(task.Attachments) == 1
	})).Return(nil)

	resp, err := service.CreateTask(ctx, "admin-1", "project-1", &task_dto.CreateTaskRequest{
		Title:  "Landing page",
		Status: "Review",
	}, []*multipart.FileHeader{file})

	require.Nil(t, err)
	assert.Equal(t, "Review", resp.Status)
	require.Len(t, resp.Attachments, 1)
	assert.Equal(t, "brief.pdf", resp.Attachments[0].OriginalName)
	m.assertExpectations(t)
}

func TestCreateTask_NotAdmin(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)

	resp, err := service.CreateTask(ctx, "part-1", "project-1", &task_dto.CreateTaskRequest{Title: "x"}, nil)

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, "forbidden.not_project_admin", err.MessageKey)
	m.repo.AssertNotCalled(t, "InsertTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTask_UnknownStatus(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)

	_, err := service.CreateTask(ctx, "admin-1", "project-1", &task_dto.CreateTaskRequest{Title: "x", Status: "Shipped"}, nil)

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, app_errors.InvalidStatus))
	m.txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateTask_AssigneeNotMember(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)

	_, err := service.CreateTask(ctx, "admin-1", "project-1", &task_dto.CreateTaskRequest{
		Title:         "x",
		AssignedUsers: []string{"part-1", "outsider"},
	}, nil)

	require.NotNil(t, err)
	assert.Equal(t, 400, err.Code)
	assert.Equal(t, "task.assignee_not_member", err.MessageKey)
}

func TestCreateTask_FileTooLargeRemovesEarlierUploads(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	small := &multipart.FileHeader{Filename: "a.txt", Size: 1}
	big := &multipart.FileHeader{Filename: "b.iso", Size: 1 << 40}
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.storage.On("Save", ctx, small).Return(&entity.TaskAttachment{StoragePath: "/uploads/a.txt"}, nil)
	m.storage.On("Save", ctx, big).Return(nil, storage.ErrFileTooLarge)
	m.storage.On("Remove", ctx, "/uploads/a.txt").Return(nil)

	_, err := service.CreateTask(ctx, "admin-1", "project-1", &task_dto.CreateTaskRequest{Title: "x"}, []*multipart.FileHeader{small, big})

	require.NotNil(t, err)
	assert.Equal(t, 413, err.Code)
	assert.Equal(t, "request.file_too_large", err.MessageKey)
	m.txManager.AssertNotCalled(t, "Begin", mock.Anything)
	m.assertExpectations(t)
}

func TestCreateTask_InsertFailsRemovesFiles(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	file := &multipart.FileHeader{Filename: "a.txt", Size: 1}
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.storage.On("Save", ctx, file).Return(&entity.TaskAttachment{StoragePath: "/uploads/a.txt"}, nil)
	m.repo.On("InsertTask", ctx, m.tx, mock.Anything).Return(app_errors.NewInternalError(errors.New("db down")))
	m.storage.On("Remove", ctx, "/uploads/a.txt").Return(nil)

	_, err := service.CreateTask(ctx, "admin-1", "project-1", &task_dto.CreateTaskRequest{Title: "x"}, []*multipart.FileHeader{file})

	require.NotNil(t, err)
	assert.Equal(t, 500, err.Code)
	m.tx.AssertNotCalled(t, "Commit", mock.Anything)
	m.assertExpectations(t)
}
