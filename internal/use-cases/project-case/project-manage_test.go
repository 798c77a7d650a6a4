package project_case

import (
	"context"
	"errors"
	"testing"

	project_dto "github.com/Xenn-00/stufen-meister/internal/dtos/project-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetProjectDetail_Member(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	members := []entity.ProjectMember{{UserID: "admin-1", Role: entity.ADMIN}, {UserID: "part-1", Role: entity.PARTICIPANT}}
	m.repo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.repo.On("GetProjectMembers", ctx, "project-1").Return(members, nil)

	resp, err := service.GetProjectDetail(ctx, "part-1", "project-1")

	require.Nil(t, err)
	assert.Equal(t, entity.PARTICIPANT, resp.Role)
	assert.Len(t, resp.Members, 2)
}

func TestGetProjectDetail_Outsider(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.repo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)

	_, err := service.GetProjectDetail(ctx, "outsider", "project-1")

	require.NotNil(t, err)
	assert.Equal(t, 403, err.Code)
	m.repo.AssertNotCalled(t, "GetProjectMembers", mock.Anything, mock.Anything)
}

func TestGetSelfProjects(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.repo.On("GetSelfProjects", ctx, "part-1").Return([]entity.ProjectSelf{{ID: "project-1", Name: "Relaunch", Role: entity.PARTICIPANT}}, nil)

	resp, err := service.GetSelfProjects(ctx, "part-1")

	require.Nil(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, entity.PARTICIPANT, resp[0].Role)
}

func TestUpdateProject_EmptyBody(t *testing.T) {
	service, _ := newTestService()

	_, err := service.UpdateProject(context.Background(), "admin-1", "project-1", &project_dto.UpdateProjectRequest{})

	require.NotNil(t, err)
	assert.Equal(t, "request.body_empty", err.MessageKey)
}

func TestUpdateProject_Success(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	updated := testProject()
	updated.Name = "Neu"
	m.repo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil).Once()
	m.repo.On("UpdateProject", ctx, "project-1", mock.MatchedBy(func(n *string) bool { return n != nil && *n == "Neu" }), (*string)(nil), mock.Anything).Return(nil)
	m.repo.On("GetProjectByID", ctx, "project-1").Return(updated, nil).Once()

	name := " Neu "
	resp, err := service.UpdateProject(ctx, "admin-1", "project-1", &project_dto.UpdateProjectRequest{Name: &name})

	require.Nil(t, err)
	assert.Equal(t, "Neu", resp.Name)
	m.repo.AssertExpectations(t)
}

func TestUpdateStages_DoesNotTouchTasks(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.repo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.repo.On("UpdateStages", ctx, "project-1", []string{"Backlog", "Done"}, mock.Anything).Return(nil)

	resp, err := service.UpdateStages(ctx, "admin-1", "project-1", []string{" Backlog", "Done"})

	require.Nil(t, err)
	assert.Equal(t, []string{"Backlog", "Done"}, resp.Stages)
	m.taskRepo.AssertNotCalled(t, "UpdateTaskFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.repo.AssertExpectations(t)
}

func TestUpdateStages_Invalid(t *testing.T) {
	service, m := newTestService()

	for _, stages := range [][]string{{}, {"A", " "}, {"A", "A"}} {
		_, err := service.UpdateStages(context.Background(), "admin-1", "project-1", stages)
		require.NotNil(t, err)
		assert.Equal(t, app_errors.ErrValidation, err.Type)
	}
	m.repo.AssertNotCalled(t, "GetProjectByID", mock.Anything, mock.Anything)
}

func TestDeleteProject_CreatorOnly(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.repo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)

	_, err := service.DeleteProject(ctx, "admin-2", "project-1")

	require.NotNil(t, err)
	assert.Equal(t, "forbidden.not_project_creator", err.MessageKey)
	m.txm.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestDeleteProject_RemovesFilesBestEffort(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.repo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.taskRepo.On("ListAttachmentPathsByProject", ctx, "project-1").Return([]string{"/u/a", "/u/b"}, nil)
	m.repo.On("DeleteProject", ctx, m.tx, "project-1").Return(int64(3), nil)
	m.storage.On("Remove", ctx, "/u/a").Return(errors.New("gone"))
	m.storage.On("Remove", ctx, "/u/b").Return(nil)

	resp, err := service.DeleteProject(ctx, "admin-1", "project-1")

	require.Nil(t, err)
	assert.Equal(t, 3, resp.DeletedTasks)
	m.tx.AssertCalled(t, "Commit", ctx)
	m.storage.AssertExpectations(t)
}
