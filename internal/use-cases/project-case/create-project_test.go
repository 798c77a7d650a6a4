package project_case

import (
	"context"
	"testing"

	project_dto "github.com/Xenn-00/stufen-meister/internal/dtos/project-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_DefaultStages(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.repo.On("InsertProject", ctx, m.tx, mock.MatchedBy(func(p *entity.ProjectEntity) bool {
		return p.CreatorID == "user-1" && assert.ObjectsAreEqual(entity.DefaultStages, p.Stages)
	})).Return(nil)
	m.repo.On("InsertProjectMember", ctx, m.tx, mock.AnythingOfType("string"), "user-1", entity.ADMIN).Return(nil)

	resp, err := service.CreateProject(ctx, "user-1", &project_dto.CreateProjectRequest{Name: "  Relaunch "})

	require.Nil(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Relaunch", resp.Name)
	assert.Equal(t, entity.ADMIN, resp.Role)
	assert.Equal(t, []string{"Assigned", "In Progress", "Review", "Complete"}, resp.Stages)
	m.tx.AssertCalled(t, "Commit", ctx)
	m.repo.AssertExpectations(t)
}

func TestCreateProject_CustomStagesTrimmed(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.repo.On("InsertProject", ctx, m.tx, mock.Anything).Return(nil)
	m.repo.On("InsertProjectMember", ctx, m.tx, mock.Anything, "user-1", entity.ADMIN).Return(nil)

	resp, err := service.CreateProject(ctx, "user-1", &project_dto.CreateProjectRequest{
		Name:   "Relaunch",
		Stages: []string{" Todo", "Doing ", "Done"},
	})

	require.Nil(t, err)
	assert.Equal(t, []string{"Todo", "Doing", "Done"}, resp.Stages)
}

func TestCreateProject_DuplicateStagesAfterTrim(t *testing.T) {
	service, m := newTestService()

	_, err := service.CreateProject(context.Background(), "user-1", &project_dto.CreateProjectRequest{
		Name:   "Relaunch",
		Stages: []string{"Todo", "Todo "},
	})

	require.NotNil(t, err)
	assert.Equal(t, 400, err.Code)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "validation.unique", err.Details[0].MessageKey)
	m.txm.AssertNotCalled(t, "Begin", mock.Anything)
}
