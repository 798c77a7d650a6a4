package user_case

import (
	"context"
	"testing"

	user_dto "github.com/Xenn-00/stufen-meister/internal/dtos/user-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	use_cases "github.com/Xenn-00/stufen-meister/internal/use-cases"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserSelfProfile_CacheMiss(t *testing.T) {
	ctx := context.Background()
	repo := new(use_cases.MockUserRepo)
	c := &use_cases.MockCache{}
	service := &UserService{repo: repo, cache: c}

	repo.On("FindByUserID", ctx, "user-1").Return(&entity.UserEntity{ID: "user-1", Username: "anna", Email: "anna@example.com"}, nil)

	resp, err := service.UserSelfProfile(ctx, "user-1")

	require.Nil(t, err)
	assert.Equal(t, "anna", resp.Username)
	assert.Equal(t, 1, c.SetCalled)
	repo.AssertExpectations(t)
}

func TestUserSelfProfile_CacheHit(t *testing.T) {
	ctx := context.Background()
	repo := new(use_cases.MockUserRepo)
	c := &use_cases.MockCache{
		GetFn: func(_ context.Context, key string, dest any) (bool, *app_errors.AppError) {
			assert.Equal(t, "user:user-1", key)
			*dest.(*user_dto.UserProfileResponse) = user_dto.UserProfileResponse{ID: "user-1", Username: "cached"}
			return true, nil
		},
	}
	service := &UserService{repo: repo, cache: c}

	resp, err := service.UserSelfProfile(ctx, "user-1")

	require.Nil(t, err)
	assert.Equal(t, "cached", resp.Username)
	repo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestUpdateSelfProfile_LowercasesEmailAndInvalidates(t *testing.T) {
	ctx := context.Background()
	repo := new(use_cases.MockUserRepo)
	c := &use_cases.MockCache{}
	service := &UserService{repo: repo, cache: c}

	email := " Anna@Example.COM "
	repo.On("UpdateSelfProfile", ctx, "user-1", mock.MatchedBy(func(u entity.UserUpdate) bool {
		return u.Email != nil && *u.Email == "anna@example.com" && u.Username == nil
	}), mock.Anything).Return(&entity.UserEntity{ID: "user-1", Email: "anna@example.com"}, nil)

	resp, err := service.UpdateSelfProfile(ctx, user_dto.UpdateSelfProfileRequest{Email: &email}, "user-1")

	require.Nil(t, err)
	assert.Equal(t, "anna@example.com", resp.Email)
	assert.Equal(t, []string{"user:user-1"}, c.DelKeys)
}

func TestUpdateSelfProfile_Conflict(t *testing.T) {
	ctx := context.Background()
	repo := new(use_cases.MockUserRepo)
	c := &use_cases.MockCache{}
	service := &UserService{repo: repo, cache: c}

	username := "taken"
	repo.On("UpdateSelfProfile", ctx, "user-1", mock.Anything, mock.Anything).
		Return(nil, app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "conflict", nil))

	_, err := service.UpdateSelfProfile(ctx, user_dto.UpdateSelfProfileRequest{Username: &username}, "user-1")

	require.NotNil(t, err)
	assert.Equal(t, 409, err.Code)
	assert.Zero(t, c.DelCalled)
}
