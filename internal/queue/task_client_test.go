package queue

import (
	"testing"
	"time"

	worker_task "github.com/Xenn-00/stufen-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	payload := &worker_task.StatusChangeApprovedPayload{
		RequestID:  "req-1",
		TaskID:     "task-1",
		Status:     "Review",
		ApprovedBy: "admin-1",
		ApprovedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	task, err := newTask(worker_task.TaskStatusChangeApproved, payload)
	require.NoError(t, err)
	assert.Equal(t, worker_task.TaskStatusChangeApproved, task.Type())

	var decoded worker_task.StatusChangeApprovedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, *payload, decoded)
}
