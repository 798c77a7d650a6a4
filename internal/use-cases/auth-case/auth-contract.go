package auth_case

import (
	"context"

	auth_dto "github.com/Xenn-00/stufen-meister/internal/dtos/auth-dto"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

// AuthServiceContract reicht die Methoden für den AuthService weiter.
type AuthServiceContract interface {
	RegisterUser(ctx context.Context, req auth_dto.RegisterUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.RegisterUserResponse, *app_errors.AppError)
	LoginUser(ctx context.Context, req auth_dto.LoginUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.LoginUserResponse, *app_errors.AppError)
	LogoutUser(ctx context.Context, sessionID string) *app_errors.AppError
	ListAllUserDevices(ctx context.Context, userID string) ([]auth_dto.ListAllUserDevicesResponse, *app_errors.AppError)
	LogoutAllDevices(ctx context.Context, userID string) *app_errors.AppError
	ChangePassword(ctx context.Context, userID, sessionID string, req auth_dto.ChangePasswordRequest) *app_errors.AppError
}
