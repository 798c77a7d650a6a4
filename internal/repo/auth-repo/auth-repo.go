package auth_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepo struct {
	db *pgxpool.Pool
}

func NewAuthRepo(db *pgxpool.Pool) AuthRepoContract {
	return &AuthRepo{
		db: db,
	}
}

// CountUsers zählt Benutzer mit passender E-Mail oder passendem Benutzernamen (ODER-verknüpft).
func (r *AuthRepo) CountUsers(ctx context.Context, filter entity.UserCountFilter) (int64, *app_errors.AppError) {
	conditions := []string{}
	args := []any{}
	argPos := 1

	if filter.Email != nil {
		conditions = append(conditions, fmt.Sprintf("email = $%d", argPos))
		args = append(args, strings.ToLower(*filter.Email))
		argPos++
	}

	if filter.Username != nil {
		conditions = append(conditions, fmt.Sprintf("username = $%d", argPos))
		args = append(args, *filter.Username)
		argPos++
	}

	query := `SELECT COUNT(*) FROM users`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " OR ")
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, app_errors.MapPgxError(err)
	}

	return count, nil
}

// SaveUsers speichert einen neuen Benutzer und gibt dessen ID zurück.
// Eine doppelte E-Mail oder ein doppelter Benutzername ergibt einen Konfliktfehler.
func (r *AuthRepo) SaveUsers(ctx context.Context, model entity.UserEntity) (string, *app_errors.AppError) {
	cols := []string{"id", "email", "password_hash", "name", "username", "created_at", "updated_at"}
	vals := []any{model.ID, strings.ToLower(model.Email), model.PasswordHash, model.Name, model.Username, model.CreatedAt, model.UpdatedAt}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
	INSERT INTO users (%s)
	VALUES (%s)
	RETURNING id;
	`, strings.Join(cols, ","), strings.Join(placeholders, ","))

	var id string
	if err := r.db.QueryRow(ctx, query, vals...).Scan(&id); err != nil {
		return "", app_errors.MapPgxError(err)
	}

	return id, nil
}

func (r *AuthRepo) FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError) {
	query := `
		SELECT id, email, username, password_hash, is_active FROM users WHERE email = $1 LIMIT 1
	`

	var u entity.UserEntity
	if err := r.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsActive); err != nil {
		return nil, app_errors.MapPgxError(err, "user_not_found")
	}

	return &u, nil
}

func (r *AuthRepo) FindByUsername(ctx context.Context, username string) (*entity.UserEntity, *app_errors.AppError) {
	query := `
		SELECT id, email, username, password_hash, is_active FROM users WHERE username = $1 LIMIT 1
	`

	var u entity.UserEntity
	if err := r.db.QueryRow(ctx, query, username).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsActive); err != nil {
		return nil, app_errors.MapPgxError(err, "user_not_found")
	}

	return &u, nil
}
