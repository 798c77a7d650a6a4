package user_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) UserRepoContract {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError) {
	query := `
		SELECT id, email, username, name, password_hash, is_active, created_at, updated_at FROM users WHERE id = $1 LIMIT 1
	`

	var u entity.UserEntity
	if err := r.db.QueryRow(ctx, query, userID).Scan(&u.ID, &u.Email, &u.Username, &u.Name, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, app_errors.MapPgxError(err, "user_not_found")
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError) {
	query := `
		SELECT id, email, username, name, is_active, created_at, updated_at FROM users WHERE email = $1 LIMIT 1
	`

	var u entity.UserEntity
	if err := r.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(&u.ID, &u.Email, &u.Username, &u.Name, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, app_errors.MapPgxError(err, "user_not_found")
	}
	return &u, nil
}

func (r *UserRepo) UpdateSelfProfile(ctx context.Context, userID string, model entity.UserUpdate, at time.Time) (*entity.UserEntity, *app_errors.AppError) {
	setClauses := make([]string, 0)
	args := make([]any, 0)
	argPos := 1

	if model.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argPos))
		args = append(args, *model.Username)
		argPos++
	}

	if model.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *model.Name)
		argPos++
	}

	if model.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argPos))
		args = append(args, strings.ToLower(*model.Email))
		argPos++
	}

	if len(setClauses) == 0 {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", fmt.Errorf("Keine Felder zum Aktualisieren."))
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, at)
	argPos++

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING id, username, name, email, created_at, updated_at
	`, strings.Join(setClauses, ", "), argPos)
	args = append(args, userID)

	var user entity.UserEntity
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, app_errors.MapPgxError(err, "user_not_found")
	}

	return &user, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string, at time.Time) *app_errors.AppError {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`, passwordHash, at, userID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("user_not_found")
	}
	return nil
}
