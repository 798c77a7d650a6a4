package worker

import (
	"fmt"

	worker_handler "github.com/Xenn-00/stufen-meister/internal/worker/handlers"
	worker_task "github.com/Xenn-00/stufen-meister/internal/worker/tasks"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

func RegisterWorkerHandlers(mux *asynq.ServeMux, h *worker_handler.WorkerHandler) {
	mux.HandleFunc(worker_task.TaskStatusChangeRequested, h.StatusChangeRequested())
	mux.HandleFunc(worker_task.TaskStatusChangeApproved, h.StatusChangeApproved())
	mux.HandleFunc(worker_task.TaskPendingRequestsDigest, h.PendingRequestsDigest())
}

type cronJob struct {
	spec  string
	task  *asynq.Task
	queue string
	desc  string
}

func cronJobs() []cronJob {
	return []cronJob{
		{
			spec:  "0 */6 * * *",
			task:  asynq.NewTask(worker_task.TaskPendingRequestsDigest, nil),
			queue: "low",
			desc:  "send pending status request digest",
		},
	}
}

func RegisterCronJobs(s *asynq.Scheduler) error {
	for _, job := range cronJobs() {
		if _, err := s.Register(job.spec, job.task, asynq.Queue(job.queue)); err != nil {
			return fmt.Errorf("register %s failed: %w", job.desc, err)
		}
		log.Info().Msgf("scheduled: %s", job.desc)
	}

	return nil
}
