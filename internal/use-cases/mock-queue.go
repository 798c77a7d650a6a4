package use_cases

import (
	"context"

	"github.com/Xenn-00/stufen-meister/internal/queue"
	worker_task "github.com/Xenn-00/stufen-meister/internal/worker/tasks"
	"github.com/stretchr/testify/mock"
)

var _ queue.TaskQueueClient = (*MockTaskQueue)(nil)

// Mock TaskQueue for testing
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) EnqueueStatusChangeRequested(ctx context.Context, payload *worker_task.StatusChangeRequestedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockTaskQueue) EnqueueStatusChangeApproved(ctx context.Context, payload *worker_task.StatusChangeApprovedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
