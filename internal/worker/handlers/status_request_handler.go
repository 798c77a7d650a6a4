package worker_handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	worker_task "github.com/Xenn-00/stufen-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// StatusChangeRequested benachrichtigt alle Admins des Projekts über einen neuen Antrag.
func (wh *WorkerHandler) StatusChangeRequested() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.StatusChangeRequestedPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when trying to unmarshal task payload.")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		req, err := wh.sr.GetStatusRequestByID(ctx, p.RequestID)
		if err != nil {
			if errors.Is(err, app_errors.NotFound) {
				return nil
			}
			return err
		}
		// idempotent: bereits genehmigte Anträge brauchen keine Benachrichtigung mehr
		if req.State != entity.RequestPending {
			return nil
		}

		admins, err := wh.pr.GetProjectAdminContacts(ctx, p.ProjectID)
		if err != nil {
			log.Error().Err(err).Str("project_id", p.ProjectID).Msg("Worker handler: error occured when fetch project admins")
			return err
		}
		if len(admins) == 0 {
			return nil
		}

		return wh.mailer.SendStatusChangeRequested(ctx, admins, wh.usernameOf(ctx, p.RequestedBy), &p)
	}
}

// StatusChangeApproved benachrichtigt den Antragsteller. Ist die Task inzwischen gelöscht, entfällt die Mail.
func (wh *WorkerHandler) StatusChangeApproved() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.StatusChangeApprovedPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when trying to unmarshal task payload.")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if p.TaskTitle == "" {
			task, err := wh.tr.GetTaskByID(ctx, p.TaskID)
			if err != nil {
				if errors.Is(err, app_errors.NotFound) {
					log.Info().Str("task_id", p.TaskID).Msg("Worker handler: task gone, skip approval mail")
					return nil
				}
				return err
			}
			p.TaskTitle = task.Title
		}

		requester, err := wh.ur.FindByUserID(ctx, p.RequestedBy)
		if err != nil {
			if errors.Is(err, app_errors.NotFound) {
				return nil
			}
			return err
		}

		contact := entity.UserContact{ID: requester.ID, Email: requester.Email, Username: requester.Username}
		return wh.mailer.SendStatusChangeApproved(ctx, contact, wh.usernameOf(ctx, p.ApprovedBy), &p)
	}
}

// PendingRequestsDigest erinnert Admins an Anträge, die länger als PendingDigestAge offen sind.
// Ein Fehler bei einem Projekt hält die übrigen nicht auf.
func (wh *WorkerHandler) PendingRequestsDigest() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		stale, err := wh.sr.ListStalePendingRequests(ctx, wh.now().Add(-PendingDigestAge))
		if err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when list pending requests")
			return err
		}
		if len(stale) == 0 {
			return nil
		}

		byProject := make(map[string][]entity.PendingRequestDigest)
		order := make([]string, 0)
		for _, item := range stale {
			if _, ok := byProject[item.ProjectID]; !ok {
				order = append(order, item.ProjectID)
			}
			byProject[item.ProjectID] = append(byProject[item.ProjectID], item)
		}

		for _, projectID := range order {
			items := byProject[projectID]
			admins, err := wh.pr.GetProjectAdminContacts(ctx, projectID)
			if err != nil {
				log.Error().Err(err).Str("project_id", projectID).Msg("Worker handler: error occured when fetch project admins")
				continue
			}
			if err := wh.mailer.SendPendingRequestsDigest(ctx, admins, items[0].ProjectName, items); err != nil {
				log.Error().Err(err).Str("project_id", projectID).Msg("Worker handler: Error occured when trying to send email.")
			}
		}

		return nil
	}
}

// usernameOf fällt auf die ID zurück, wenn der Benutzer nicht geladen werden kann.
func (wh *WorkerHandler) usernameOf(ctx context.Context, userID string) string {
	user, err := wh.ur.FindByUserID(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Worker handler: user lookup failed")
		return userID
	}
	return user.Username
}
