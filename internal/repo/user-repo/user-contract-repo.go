package user_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

type UserRepoContract interface {
	FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError)
	FindByEmail(ctx context.Context, email string) (*entity.UserEntity, *app_errors.AppError)
	UpdateSelfProfile(ctx context.Context, userID string, model entity.UserUpdate, at time.Time) (*entity.UserEntity, *app_errors.AppError)
	UpdatePassword(ctx context.Context, userID, passwordHash string, at time.Time) *app_errors.AppError
}
