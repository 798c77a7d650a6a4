package status_request_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestColumns = `id, task_id, project_id, requested_by, current_status, requested_status, state, created_at, approved_by, approved_at`

type StatusRequestRepo struct {
	db *pgxpool.Pool
}

func NewStatusRequestRepo(db *pgxpool.Pool) StatusRequestRepoContract {
	return &StatusRequestRepo{
		db: db,
	}
}

func scanRequest(row pgx.Row) (entity.StatusChangeRequestEntity, error) {
	var req entity.StatusChangeRequestEntity
	err := row.Scan(
		&req.ID,
		&req.TaskID,
		&req.ProjectID,
		&req.RequestedBy,
		&req.CurrentStatus,
		&req.RequestedStatus,
		&req.State,
		&req.CreatedAt,
		&req.ApprovedBy,
		&req.ApprovedAt,
	)
	return req, err
}

func (r *StatusRequestRepo) InsertStatusRequest(ctx context.Context, req *entity.StatusChangeRequestEntity) *app_errors.AppError {
	query := `
	INSERT INTO status_change_requests (
		id, task_id, project_id, requested_by, current_status, requested_status, state, created_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8);
	`
	if _, err := r.db.Exec(ctx, query, req.ID, req.TaskID, req.ProjectID, req.RequestedBy, req.CurrentStatus, req.RequestedStatus, req.State, req.CreatedAt); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *StatusRequestRepo) GetStatusRequestByID(ctx context.Context, requestID string) (*entity.StatusChangeRequestEntity, *app_errors.AppError) {
	query := fmt.Sprintf(`SELECT %s FROM status_change_requests WHERE id = $1;`, requestColumns)

	req, err := scanRequest(r.db.QueryRow(ctx, query, requestID))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "status_request_not_found")
	}
	return &req, nil
}

// ApproveStatusRequest ist der Compare-and-Swap Pending -> Approved. Hat ein anderer Aufrufer
// den Antrag bereits entschieden, trifft das UPDATE keine Zeile und es folgt InvalidState.
func (r *StatusRequestRepo) ApproveStatusRequest(ctx context.Context, t tx.Tx, requestID, adminID string, at time.Time) (*entity.StatusChangeRequestEntity, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return nil, appErr
	}

	query := fmt.Sprintf(`
	UPDATE status_change_requests
	SET state = $2,
		approved_by = $3,
		approved_at = $4
	WHERE id = $1
		AND state = $5
	RETURNING %s;
	`, requestColumns)

	req, err := scanRequest(pgxTx.QueryRow(ctx, query, requestID, entity.RequestApproved, adminID, at, entity.RequestPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.NewInvalidStateError(fmt.Errorf("status request %s is not pending", requestID))
		}
		return nil, app_errors.MapPgxError(err)
	}
	return &req, nil
}

func (r *StatusRequestRepo) ListStatusRequestsByTask(ctx context.Context, taskID string, state *entity.RequestState) ([]entity.StatusChangeRequestEntity, *app_errors.AppError) {
	query := fmt.Sprintf(`SELECT %s FROM status_change_requests WHERE task_id = $1`, requestColumns)
	args := []any{taskID}

	if state != nil {
		query += " AND state = $2"
		args = append(args, *state)
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	requests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.StatusChangeRequestEntity, error) {
		return scanRequest(row)
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return requests, nil
}

// ListStalePendingRequests liefert offene Anträge vor createdBefore, deren Task und Projekt noch existieren.
func (r *StatusRequestRepo) ListStalePendingRequests(ctx context.Context, createdBefore time.Time) ([]entity.PendingRequestDigest, *app_errors.AppError) {
	query := `
	SELECT scr.id, scr.project_id, p.name, t.title, scr.requested_status, COALESCE(u.username, ''), scr.created_at
	FROM status_change_requests scr
	JOIN tasks t ON t.id = scr.task_id
	JOIN projects p ON p.id = scr.project_id
	LEFT JOIN users u ON u.id = scr.requested_by
	WHERE scr.state = $1
		AND scr.created_at < $2
	ORDER BY scr.project_id, scr.created_at;
	`
	rows, err := r.db.Query(ctx, query, entity.RequestPending, createdBefore)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	digests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.PendingRequestDigest, error) {
		var d entity.PendingRequestDigest
		err := row.Scan(&d.RequestID, &d.ProjectID, &d.ProjectName, &d.TaskTitle, &d.RequestedStatus, &d.RequesterUsername, &d.CreatedAt)
		return d, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return digests, nil
}
