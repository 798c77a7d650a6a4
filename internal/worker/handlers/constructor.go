package worker_handler

import (
	"time"

	"github.com/Xenn-00/stufen-meister/internal/mail"
	project_repo "github.com/Xenn-00/stufen-meister/internal/repo/project-repo"
	status_request_repo "github.com/Xenn-00/stufen-meister/internal/repo/status-request-repo"
	task_repo "github.com/Xenn-00/stufen-meister/internal/repo/task-repo"
	user_repo "github.com/Xenn-00/stufen-meister/internal/repo/user-repo"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PendingDigestAge: offene Anträge älter als dieser Wert landen in der Sammel-Erinnerung.
const PendingDigestAge = 24 * time.Hour

type WorkerHandler struct {
	pr     project_repo.ProjectRepoContract
	sr     status_request_repo.StatusRequestRepoContract
	tr     task_repo.TaskRepoContract
	ur     user_repo.UserRepoContract
	mailer mail.Mailer
	now    func() time.Time
}

func NewWorkerHandler(db *pgxpool.Pool, mailer mail.Mailer) *WorkerHandler {
	return &WorkerHandler{
		pr:     project_repo.NewProjectRepo(db),
		sr:     status_request_repo.NewStatusRequestRepo(db),
		tr:     task_repo.NewTaskRepo(db),
		ur:     user_repo.NewUserRepo(db),
		mailer: mailer,
		now:    time.Now,
	}
}
