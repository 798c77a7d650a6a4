package queue

import (
	"context"
	"errors"

	worker_task "github.com/Xenn-00/stufen-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type TaskQueueClient interface {
	EnqueueStatusChangeRequested(ctx context.Context, payload *worker_task.StatusChangeRequestedPayload) error
	EnqueueStatusChangeApproved(ctx context.Context, payload *worker_task.StatusChangeApprovedPayload) error
}

type TaskQueue struct {
	client *asynq.Client
}

func NewTaskQueue(redis *redis.Client) *TaskQueue {
	return &TaskQueue{
		client: asynq.NewClientFromRedisClient(redis),
	}
}

func (q *TaskQueue) EnqueueStatusChangeRequested(ctx context.Context, payload *worker_task.StatusChangeRequestedPayload) error {
	task, err := newTask(worker_task.TaskStatusChangeRequested, payload)
	if err != nil {
		return err
	}
	return q.enqueue(ctx, task, "requested:"+payload.RequestID)
}

func (q *TaskQueue) EnqueueStatusChangeApproved(ctx context.Context, payload *worker_task.StatusChangeApprovedPayload) error {
	task, err := newTask(worker_task.TaskStatusChangeApproved, payload)
	if err != nil {
		return err
	}
	return q.enqueue(ctx, task, "approved:"+payload.RequestID)
}

func newTask(typeName string, payload any) (*asynq.Task, error) {
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typeName, p, asynq.Queue("email"), asynq.MaxRetry(5)), nil
}

// enqueue nutzt die Antrags-ID als Task-ID, ein zweites Einreihen derselben Nachricht ist ein No-op.
func (q *TaskQueue) enqueue(ctx context.Context, task *asynq.Task, taskID string) error {
	info, err := q.client.EnqueueContext(ctx, task, asynq.TaskID(taskID))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		log.Debug().Str("task_id", taskID).Msg("Task bereits eingereiht.")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("task", task.Type()).Str("queue", info.Queue).Msg("Task eingereiht.")
	return nil
}

func (q *TaskQueue) Close() error {
	return q.client.Close()
}
