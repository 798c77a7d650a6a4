package task_case

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	worker_task "github.com/Xenn-00/stufen-meister/internal/worker/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func approvedFrom(req *entity.StatusChangeRequestEntity, adminID string) *entity.StatusChangeRequestEntity {
	out := *req
	now := time.Now()
	out.State = entity.RequestApproved
	out.ApprovedBy = &adminID
	out.ApprovedAt = &now
	return &out
}

func TestApproveStatusChange_Success(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()
	req := pendingRequest()

	m.requestRepo.On("GetStatusRequestByID", ctx, "req-1").Return(req, nil)
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.requestRepo.On("ApproveStatusRequest", ctx, m.tx, "req-1", "admin-1", mock.AnythingOfType("time.Time")).
		Return(approvedFrom(req, "admin-1"), nil)
	m.repo.On("UpdateTaskFields", ctx, m.tx, "task-1", mock.MatchedBy(func(u *entity.TaskUpdate) bool {
		return u.Status != nil && *u.Status == "In Progress" && u.Title == nil && u.Description == nil
	}), mock.AnythingOfType("time.Time")).Return(nil)
	m.repo.On("AppendStatusHistory", ctx, m.tx, "task-1", "In Progress", mock.AnythingOfType("time.Time")).Return(nil)
	m.queue.On("EnqueueStatusChangeApproved", ctx, mock.MatchedBy(func(p *worker_task.StatusChangeApprovedPayload) bool {
		return p.RequestID == "req-1" && p.ApprovedBy == "admin-1" && p.RequestedBy == "part-1"
	})).Return(nil)

	resp, err := service.ApproveStatusChange(ctx, "admin-1", "req-1")

	require.Nil(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, "task-1", resp.TaskID)
	assert.Equal(t, "In Progress", resp.Status)
	assert.Equal(t, "admin-1", resp.ApprovedBy)
	assert.False(t, resp.ApprovedAt.IsZero())

	m.tx.AssertCalled(t, "Commit", ctx)
	assert.Contains(t, m.cache.DelKeys, "task:task-1")
	m.assertExpectations(t)
}

func TestApproveStatusChange_SecondApproveIsInvalidState(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()
	req := pendingRequest()
	approved := approvedFrom(req, "admin-1")

	m.requestRepo.On("GetStatusRequestByID", ctx, "req-1").Return(req, nil).Once()
	m.requestRepo.On("GetStatusRequestByID", ctx, "req-1").Return(approved, nil).Once()
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil).Once()
	m.requestRepo.On("ApproveStatusRequest", ctx, m.tx, "req-1", "admin-1", mock.Anything).Return(approved, nil).Once()
	m.repo.On("UpdateTaskFields", ctx, m.tx, "task-1", mock.Anything, mock.Anything).Return(nil).Once()
	m.repo.On("AppendStatusHistory", ctx, m.tx, "task-1", "In Progress", mock.Anything).Return(nil).Once()
	m.queue.On("EnqueueStatusChangeApproved", ctx, mock.Anything).Return(nil).Once()

	_, err := service.ApproveStatusChange(ctx, "admin-1", "req-1")
	require.Nil(t, err)

	resp, err := service.ApproveStatusChange(ctx, "admin-1", "req-1")

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, app_errors.InvalidState))
	assert.Equal(t, 409, err.Code)
	m.assertExpectations(t)
}

func TestApproveStatusChange_LostRaceIsInvalidState(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.requestRepo.On("GetStatusRequestByID", ctx, "req-1").Return(pendingRequest(), nil)
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	// Ein anderer Admin hat zwischen Lesen und CAS genehmigt.
	m.requestRepo.On("ApproveStatusRequest", ctx, m.tx, "req-1", "admin-1", mock.Anything).
		Return(nil, app_errors.NewInvalidStateError(nil))

	resp, err := service.ApproveStatusChange(ctx, "admin-1", "req-1")

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, app_errors.InvalidState))
	m.repo.AssertNotCalled(t, "UpdateTaskFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.repo.AssertNotCalled(t, "AppendStatusHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.tx.AssertNotCalled(t, "Commit", mock.Anything)
	m.queue.AssertNotCalled(t, "EnqueueStatusChangeApproved", mock.Anything, mock.Anything)
}

func TestApproveStatusChange_RequestNotFound(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.requestRepo.On("GetStatusRequestByID", ctx, "missing").Return(nil, app_errors.NewNotFoundError("status_request_not_found"))

	_, err := service.ApproveStatusChange(ctx, "admin-1", "missing")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, app_errors.InvalidState))
	m.projectRepo.AssertNotCalled(t, "GetProjectByID", mock.Anything, mock.Anything)
}

func TestApproveStatusChange_NotAdmin(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	m.requestRepo.On("GetStatusRequestByID", ctx, "req-1").Return(pendingRequest(), nil)
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)

	// Auch der Antragsteller selbst darf nicht genehmigen.
	for _, caller := range []string{"part-1", "outsider"} {
		_, err := service.ApproveStatusChange(ctx, caller, "req-1")

		require.NotNil(t, err)
		assert.Equal(t, 403, err.Code)
		assert.Equal(t, "forbidden.not_project_admin", err.MessageKey)
	}
	m.txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestApproveStatusChange_StageRemovedSinceRequest(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	project := testProject()
	project.Stages = []string{"Assigned", "Done"}

	m.requestRepo.On("GetStatusRequestByID", ctx, "req-1").Return(pendingRequest(), nil)
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(project, nil)

	_, err := service.ApproveStatusChange(ctx, "admin-1", "req-1")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, app_errors.InvalidStatus))
	m.txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestApproveStatusChange_TaskDeletedRollsBack(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()
	req := pendingRequest()

	m.requestRepo.On("GetStatusRequestByID", ctx, "req-1").Return(req, nil)
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.requestRepo.On("ApproveStatusRequest", ctx, m.tx, "req-1", "admin-1", mock.Anything).Return(approvedFrom(req, "admin-1"), nil)
	m.repo.On("UpdateTaskFields", ctx, m.tx, "task-1", mock.Anything, mock.Anything).Return(app_errors.NewNotFoundError("task_not_found"))

	_, err := service.ApproveStatusChange(ctx, "admin-1", "req-1")

	require.NotNil(t, err)
	assert.Equal(t, "task_not_found", err.MessageKey)
	m.tx.AssertCalled(t, "Rollback", ctx)
	m.tx.AssertNotCalled(t, "Commit", mock.Anything)
	m.repo.AssertNotCalled(t, "AppendStatusHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveStatusChange_EnqueueFailureStillSucceeds(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()
	req := pendingRequest()

	m.requestRepo.On("GetStatusRequestByID", ctx, "req-1").Return(req, nil)
	m.projectRepo.On("GetProjectByID", ctx, "project-1").Return(testProject(), nil)
	m.requestRepo.On("ApproveStatusRequest", ctx, m.tx, "req-1", "admin-1", mock.Anything).Return(approvedFrom(req, "admin-1"), nil)
	m.repo.On("UpdateTaskFields", ctx, m.tx, "task-1", mock.Anything, mock.Anything).Return(nil)
	m.repo.On("AppendStatusHistory", ctx, m.tx, "task-1", "In Progress", mock.Anything).Return(nil)
	m.queue.On("EnqueueStatusChangeApproved", ctx, mock.Anything).Return(errors.New("redis down"))

	resp, err := service.ApproveStatusChange(ctx, "admin-1", "req-1")

	assert.Nil(t, err)
	require.NotNil(t, resp)
	m.tx.AssertCalled(t, "Commit", ctx)
}
