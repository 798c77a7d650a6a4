package project_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepo(db *pgxpool.Pool) ProjectRepoContract {
	return &ProjectRepo{
		db: db,
	}
}

func (r *ProjectRepo) InsertProject(ctx context.Context, t tx.Tx, project *entity.ProjectEntity) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	cols := []string{"id", "name", "description", "creator_id", "stages", "created_at", "updated_at"}
	vals := []any{project.ID, project.Name, project.Description, project.CreatorID, project.Stages, project.CreatedAt, project.UpdatedAt}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
	INSERT INTO projects (%s)
	VALUES (%s);
	`, strings.Join(cols, ","), strings.Join(placeholders, ","))

	if _, err := pgxTx.Exec(ctx, query, vals...); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *ProjectRepo) InsertProjectMember(ctx context.Context, t tx.Tx, projectID, userID string, role entity.UserRole) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	memberID, err := uuid.NewV7()
	if err != nil {
		return app_errors.NewInternalError(err)
	}

	query := `
	INSERT INTO project_members (
		id, project_id, user_id, role
	) VALUES ($1, $2, $3, $4);
	`
	if _, err := pgxTx.Exec(ctx, query, memberID.String(), projectID, userID, role); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

// GetProjectByID lädt das Projekt samt Admin- und Teilnehmerliste.
func (r *ProjectRepo) GetProjectByID(ctx context.Context, projectID string) (*entity.ProjectEntity, *app_errors.AppError) {
	query := `
	SELECT
		p.id, p.name, p.description, p.creator_id, p.stages, p.created_at, p.updated_at,
		COALESCE(array_agg(pm.user_id::text ORDER BY pm.joined_at) FILTER (WHERE pm.role = 'Admin'), '{}'),
		COALESCE(array_agg(pm.user_id::text ORDER BY pm.joined_at) FILTER (WHERE pm.role = 'Participant'), '{}')
	FROM projects p
	LEFT JOIN project_members pm ON pm.project_id = p.id
	WHERE p.id = $1
	GROUP BY p.id;
	`

	var p entity.ProjectEntity
	if err := r.db.QueryRow(ctx, query, projectID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CreatorID,
		&p.Stages,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.AdminUsers,
		&p.Participants,
	); err != nil {
		return nil, app_errors.MapPgxError(err, "project_not_found")
	}
	return &p, nil
}

func (r *ProjectRepo) GetProjectMembers(ctx context.Context, projectID string) ([]entity.ProjectMember, *app_errors.AppError) {
	query := `
	SELECT u.id, u.username, u.email, pm.role, pm.joined_at
	FROM project_members pm
	JOIN users u ON u.id = pm.user_id
	WHERE pm.project_id = $1
	ORDER BY pm.joined_at;
	`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ProjectMember, error) {
		var m entity.ProjectMember
		err := row.Scan(&m.UserID, &m.Username, &m.Email, &m.Role, &m.JoinedAt)
		return m, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return members, nil
}

func (r *ProjectRepo) GetProjectAdminContacts(ctx context.Context, projectID string) ([]entity.UserContact, *app_errors.AppError) {
	query := `
	SELECT u.id, u.email, u.username
	FROM project_members pm
	JOIN users u ON u.id = pm.user_id
	WHERE pm.project_id = $1
		AND pm.role = $2;
	`
	rows, err := r.db.Query(ctx, query, projectID, entity.ADMIN)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	contacts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.UserContact, error) {
		var c entity.UserContact
		err := row.Scan(&c.ID, &c.Email, &c.Username)
		return c, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return contacts, nil
}

func (r *ProjectRepo) GetSelfProjects(ctx context.Context, userID string) ([]entity.ProjectSelf, *app_errors.AppError) {
	query := `
	SELECT p.id, p.name, p.description, p.creator_id, pm.role, p.created_at
	FROM project_members pm
	JOIN projects p ON p.id = pm.project_id
	WHERE pm.user_id = $1
	ORDER BY p.created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ProjectSelf, error) {
		var p entity.ProjectSelf
		err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatorID, &p.Role, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return projects, nil
}

func (r *ProjectRepo) UpdateProject(ctx context.Context, projectID string, name, description *string, at time.Time) *app_errors.AppError {
	setClauses := []string{"updated_at = $1"}
	args := []any{at}
	argPos := 2

	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *name)
		argPos++
	}
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *description)
		argPos++
	}

	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $%d;`, strings.Join(setClauses, ", "), argPos)
	args = append(args, projectID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("project_not_found")
	}
	return nil
}

// UpsertProjectMember legt die Mitgliedschaft an oder ändert die Rolle eines bestehenden Mitglieds.
func (r *ProjectRepo) UpsertProjectMember(ctx context.Context, projectID, userID string, role entity.UserRole) *app_errors.AppError {
	memberID, err := uuid.NewV7()
	if err != nil {
		return app_errors.NewInternalError(err)
	}

	query := `
	INSERT INTO project_members (id, project_id, user_id, role)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role;
	`
	if _, err := r.db.Exec(ctx, query, memberID.String(), projectID, userID, role); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

// RemoveProjectMember entfernt auch die Task-Zuweisungen des Benutzers in diesem Projekt.
func (r *ProjectRepo) RemoveProjectMember(ctx context.Context, projectID, userID string) (bool, *app_errors.AppError) {
	batch := &pgx.Batch{}
	batch.Queue(`
	DELETE FROM task_assignees ta
	USING tasks t
	WHERE t.id = ta.task_id
		AND t.project_id = $1
		AND ta.user_id = $2;
	`, projectID, userID)
	batch.Queue(`DELETE FROM project_members WHERE project_id = $1 AND user_id = $2;`, projectID, userID)

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	if _, err := br.Exec(); err != nil {
		return false, app_errors.MapPgxError(err)
	}
	tag, err := br.Exec()
	if err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProjectRepo) UpdateStages(ctx context.Context, projectID string, stages []string, at time.Time) *app_errors.AppError {
	tag, err := r.db.Exec(ctx, `UPDATE projects SET stages = $1, updated_at = $2 WHERE id = $3;`, stages, at, projectID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("project_not_found")
	}
	return nil
}

// DeleteProject löscht zuerst die Tasks (für die Anzahl), dann das Projekt; der Rest folgt per CASCADE.
func (r *ProjectRepo) DeleteProject(ctx context.Context, t tx.Tx, projectID string) (int64, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return 0, appErr
	}

	tasksTag, err := pgxTx.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1;`, projectID)
	if err != nil {
		return 0, app_errors.MapPgxError(err)
	}

	tag, err := pgxTx.Exec(ctx, `DELETE FROM projects WHERE id = $1;`, projectID)
	if err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return 0, app_errors.NewNotFoundError("project_not_found")
	}
	return tasksTag.RowsAffected(), nil
}
