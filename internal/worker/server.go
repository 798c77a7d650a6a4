package worker

import (
	"context"
	"time"

	worker_handler "github.com/Xenn-00/stufen-meister/internal/worker/handlers"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func NewWorkerServer(redis *redis.Client) *asynq.Server {
	return asynq.NewServer(
		asynqRedisOpt(redis),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"email":   6,
				"default": 3,
				"low":     1,
			},
			RetryDelayFunc: retryDelay,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().
					Err(err).
					Str("task", task.Type()).
					Bytes("payload", task.Payload()).
					Msg("task failed")
			}),
		},
	)
}

// retryDelay wächst linear mit der Anzahl der Versuche.
func retryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	return time.Duration(n) * time.Second
}

func NewScheduler(redis *redis.Client) *asynq.Scheduler {
	return asynq.NewScheduler(
		asynqRedisOpt(redis),
		&asynq.SchedulerOpts{
			Location: time.Local,
			LogLevel: asynq.InfoLevel,
		},
	)
}

// RunWorker startet Scheduler und Server und blockiert bis ctx beendet ist.
func RunWorker(ctx context.Context, redis *redis.Client, handler *worker_handler.WorkerHandler) error {
	srv := NewWorkerServer(redis)
	scheduler := NewScheduler(redis)

	mux := asynq.NewServeMux()
	RegisterWorkerHandlers(mux, handler)

	if err := RegisterCronJobs(scheduler); err != nil {
		return err
	}

	if err := scheduler.Start(); err != nil {
		return err
	}
	if err := srv.Start(mux); err != nil {
		scheduler.Shutdown()
		return err
	}

	<-ctx.Done()
	log.Info().Msg("shutting down worker server...")

	scheduler.Shutdown()
	srv.Shutdown()

	return nil
}
