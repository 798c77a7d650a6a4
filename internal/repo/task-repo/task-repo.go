package task_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo struct {
	db *pgxpool.Pool
}

func NewTaskRepo(db *pgxpool.Pool) TaskRepoContract {
	return &TaskRepo{
		db: db,
	}
}

// InsertTask schreibt Task, Zuweisungen, den ersten Historieneintrag und die Anhänge.
func (r *TaskRepo) InsertTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	query := `
	INSERT INTO tasks (
		id, project_id, title, description, status, created_by, created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8);
	`
	if _, err := pgxTx.Exec(ctx, query, task.ID, task.ProjectID, task.Title, task.Description, task.Status, task.CreatedBy, task.CreatedAt, task.UpdatedAt); err != nil {
		return app_errors.MapPgxError(err)
	}

	if err := insertAssignees(ctx, pgxTx, task.ID, task.AssignedUsers); err != nil {
		return err
	}

	for _, h := range task.StatusHistory {
		if err := r.AppendStatusHistory(ctx, t, task.ID, h.Status, h.Timestamp); err != nil {
			return err
		}
	}

	return r.InsertAttachments(ctx, t, task.ID, task.Attachments)
}

func (r *TaskRepo) GetTaskByID(ctx context.Context, taskID string) (*entity.TaskEntity, *app_errors.AppError) {
	batch := &pgx.Batch{}
	batch.Queue(`
	SELECT id, project_id, title, description, status, created_by, created_at, updated_at
	FROM tasks
	WHERE id = $1;
	`, taskID)
	batch.Queue(`SELECT user_id FROM task_assignees WHERE task_id = $1 ORDER BY user_id;`, taskID)
	batch.Queue(`SELECT status, changed_at FROM task_status_history WHERE task_id = $1 ORDER BY id;`, taskID)
	batch.Queue(`
	SELECT original_name, stored_name, storage_path, uploaded_at
	FROM task_attachments
	WHERE task_id = $1
	ORDER BY id;
	`, taskID)

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	var task entity.TaskEntity
	if err := br.QueryRow().Scan(&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, app_errors.MapPgxError(err, "task_not_found")
	}

	rows, err := br.Query()
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	if task.AssignedUsers, err = pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	rows, err = br.Query()
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	task.StatusHistory, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.StatusHistoryEntry, error) {
		var h entity.StatusHistoryEntry
		err := row.Scan(&h.Status, &h.Timestamp)
		return h, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	rows, err = br.Query()
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	task.Attachments, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.TaskAttachment, error) {
		var a entity.TaskAttachment
		err := row.Scan(&a.OriginalName, &a.StoredName, &a.StoragePath, &a.UploadedAt)
		return a, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	return &task, nil
}

func (r *TaskRepo) CountTasksByProject(ctx context.Context, projectID string, status *string) (int64, *app_errors.AppError) {
	query := `SELECT COUNT(*) FROM tasks WHERE project_id = $1`
	args := []any{projectID}

	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	return count, nil
}

// ListTasksByProject liefert Tasks samt Zuweisungen, ohne Historie und Anhänge.
func (r *TaskRepo) ListTasksByProject(ctx context.Context, projectID string, filter *task_dto.TaskListFilter) ([]entity.TaskEntity, *app_errors.AppError) {
	query := `
	SELECT id, project_id, title, description, status, created_by, created_at, updated_at
	FROM tasks
	WHERE project_id = $1
	`
	args := []any{projectID}
	argsPos := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argsPos)
		args = append(args, *filter.Status)
		argsPos++
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d;", argsPos, argsPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.TaskEntity, error) {
		var t entity.TaskEntity
		err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
		return t, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	ids := make([]string, len(tasks))
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
		index[t.ID] = i
	}

	assigneeRows, err := r.db.Query(ctx, `
	SELECT task_id, user_id
	FROM task_assignees
	WHERE task_id = ANY($1::uuid[])
	ORDER BY user_id;
	`, ids)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer assigneeRows.Close()

	for assigneeRows.Next() {
		var taskID, userID string
		if err := assigneeRows.Scan(&taskID, &userID); err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		i := index[taskID]
		tasks[i].AssignedUsers = append(tasks[i].AssignedUsers, userID)
	}
	if err := assigneeRows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	return tasks, nil
}

func (r *TaskRepo) ListTasksByAssignee(ctx context.Context, userID string) ([]entity.AssignedTask, *app_errors.AppError) {
	query := `
	SELECT t.id, t.project_id, p.name, t.title, t.status, t.updated_at
	FROM task_assignees ta
	JOIN tasks t ON t.id = ta.task_id
	JOIN projects p ON p.id = t.project_id
	WHERE ta.user_id = $1
	ORDER BY t.updated_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.AssignedTask, error) {
		var t entity.AssignedTask
		err := row.Scan(&t.ID, &t.ProjectID, &t.ProjectName, &t.Title, &t.Status, &t.UpdatedAt)
		return t, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return tasks, nil
}

// LockTaskStatus sperrt die Task-Zeile bis zum Ende der Transaktion und liefert den aktuellen Status.
func (r *TaskRepo) LockTaskStatus(ctx context.Context, t tx.Tx, taskID string) (string, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return "", appErr
	}

	var status string
	if err := pgxTx.QueryRow(ctx, `SELECT status FROM tasks WHERE id = $1 FOR UPDATE;`, taskID).Scan(&status); err != nil {
		return "", app_errors.MapPgxError(err, "task_not_found")
	}
	return status, nil
}

// UpdateTaskFields setzt nur die gesetzten Felder; updated_at wird immer erneuert.
func (r *TaskRepo) UpdateTaskFields(ctx context.Context, t tx.Tx, taskID string, update *entity.TaskUpdate, at time.Time) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	query := `UPDATE tasks SET updated_at = $1`
	args := []any{at}
	argPos := 2

	if update.Title != nil {
		query += fmt.Sprintf(", title = $%d", argPos)
		args = append(args, *update.Title)
		argPos++
	}
	if update.Description != nil {
		query += fmt.Sprintf(", description = $%d", argPos)
		args = append(args, *update.Description)
		argPos++
	}
	if update.Status != nil {
		query += fmt.Sprintf(", status = $%d", argPos)
		args = append(args, *update.Status)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d;", argPos)
	args = append(args, taskID)

	tag, err := pgxTx.Exec(ctx, query, args...)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("task_not_found")
	}
	return nil
}

func (r *TaskRepo) ReplaceAssignees(ctx context.Context, t tx.Tx, taskID string, userIDs []string) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	if _, err := pgxTx.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1;`, taskID); err != nil {
		return app_errors.MapPgxError(err)
	}
	return insertAssignees(ctx, pgxTx, taskID, userIDs)
}

// AppendStatusHistory ist der einzige Schreibzugriff auf task_status_history.
func (r *TaskRepo) AppendStatusHistory(ctx context.Context, t tx.Tx, taskID, status string, at time.Time) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	query := `
	INSERT INTO task_status_history (task_id, status, changed_at)
	VALUES ($1, $2, $3);
	`
	if _, err := pgxTx.Exec(ctx, query, taskID, status, at); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *TaskRepo) InsertAttachments(ctx context.Context, t tx.Tx, taskID string, attachments []entity.TaskAttachment) *app_errors.AppError {
	if len(attachments) == 0 {
		return nil
	}

	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	query := `
	INSERT INTO task_attachments (task_id, original_name, stored_name, storage_path, uploaded_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, a := range attachments {
		batch.Queue(query, taskID, a.OriginalName, a.StoredName, a.StoragePath, a.UploadedAt)
	}

	if err := pgxTx.SendBatch(ctx, batch).Close(); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

// DeleteTask löscht die Task (Zuweisungen, Historie und Anhänge per CASCADE) und gibt die Anhänge
// zurück, damit der Aufrufer die Dateien entfernen kann.
func (r *TaskRepo) DeleteTask(ctx context.Context, t tx.Tx, taskID string) ([]entity.TaskAttachment, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return nil, appErr
	}

	rows, err := pgxTx.Query(ctx, `
	SELECT original_name, stored_name, storage_path, uploaded_at
	FROM task_attachments
	WHERE task_id = $1
	ORDER BY id;
	`, taskID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	attachments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.TaskAttachment, error) {
		var a entity.TaskAttachment
		err := row.Scan(&a.OriginalName, &a.StoredName, &a.StoragePath, &a.UploadedAt)
		return a, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	tag, err := pgxTx.Exec(ctx, `DELETE FROM tasks WHERE id = $1;`, taskID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, app_errors.NewNotFoundError("task_not_found")
	}

	return attachments, nil
}

func (r *TaskRepo) ListAttachmentPathsByProject(ctx context.Context, projectID string) ([]string, *app_errors.AppError) {
	query := `
	SELECT a.storage_path
	FROM task_attachments a
	JOIN tasks t ON t.id = a.task_id
	WHERE t.project_id = $1;
	`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return paths, nil
}

func insertAssignees(ctx context.Context, pgxTx pgx.Tx, taskID string, userIDs []string) *app_errors.AppError {
	if len(userIDs) == 0 {
		return nil
	}

	query := `
	INSERT INTO task_assignees (task_id, user_id)
	SELECT $1, unnest($2::uuid[])
	ON CONFLICT DO NOTHING;
	`
	if _, err := pgxTx.Exec(ctx, query, taskID, userIDs); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}
