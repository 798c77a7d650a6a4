package auth_case

import (
	"context"
	"testing"
	"time"

	auth_dto "github.com/Xenn-00/stufen-meister/internal/dtos/auth-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	use_cases "github.com/Xenn-00/stufen-meister/internal/use-cases"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*AuthService, *use_cases.MockAuthRepo, *use_cases.MockUserRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	maker, err := utils.NewPasetoMaker(utils.GenerateSymmetricKey())
	require.NoError(t, err)

	repo := new(use_cases.MockAuthRepo)
	userRepo := new(use_cases.MockUserRepo)
	return &AuthService{
		redis:    rdb,
		paseto:   maker,
		repo:     repo,
		userRepo: userRepo,
		tokenTTL: time.Hour,
	}, repo, userRepo, mr
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := utils.GenerateHash(pw)
	require.NoError(t, err)
	return h
}

func TestRegisterUser_Success(t *testing.T) {
	ctx := context.Background()
	service, repo, _, mr := newTestService(t)

	repo.On("CountUsers", ctx, mock.MatchedBy(func(f entity.UserCountFilter) bool {
		return *f.Email == "anna@example.com" && *f.Username == "anna"
	})).Return(int64(0), nil)
	repo.On("SaveUsers", ctx, mock.MatchedBy(func(u entity.UserEntity) bool {
		return u.Email == "anna@example.com" && u.PasswordHash != "geheim123" && u.IsActive
	})).Return("user-1", nil)

	resp, err := service.RegisterUser(ctx, auth_dto.RegisterUserRequest{
		Email:    "Anna@Example.com",
		Name:     "Anna",
		Username: "anna",
		Password: "geheim123",
	}, auth_dto.LoginMetadata{})

	require.Nil(t, err)
	assert.Equal(t, "user-1", resp.UserID)
	assert.NotEmpty(t, resp.Token)

	members, redisErr := mr.Members(UserSessionsKey("user-1"))
	require.NoError(t, redisErr)
	assert.Len(t, members, 1)
	repo.AssertExpectations(t)
}

func TestRegisterUser_Conflict(t *testing.T) {
	ctx := context.Background()
	service, repo, _, _ := newTestService(t)

	repo.On("CountUsers", ctx, mock.Anything).Return(int64(1), nil)

	_, err := service.RegisterUser(ctx, auth_dto.RegisterUserRequest{Email: "a@b.de", Username: "anna", Password: "geheim123"}, auth_dto.LoginMetadata{})

	require.NotNil(t, err)
	assert.Equal(t, 409, err.Code)
	repo.AssertNotCalled(t, "SaveUsers", mock.Anything, mock.Anything)
}

func TestLoginUser_ByEmailCreatesSession(t *testing.T) {
	ctx := context.Background()
	service, repo, _, mr := newTestService(t)

	repo.On("FindByEmail", ctx, "anna@example.com").Return(&entity.UserEntity{
		ID:           "user-1",
		Email:        "anna@example.com",
		Username:     "anna",
		PasswordHash: hashed(t, "geheim123"),
		IsActive:     true,
	}, nil)

	resp, err := service.LoginUser(ctx, auth_dto.LoginUserRequest{Identifier: "Anna@example.com", Password: "geheim123"}, auth_dto.LoginMetadata{IP: "10.0.0.1"})

	require.Nil(t, err)
	payload, verifyErr := service.paseto.VerifyToken(resp.Token)
	require.NoError(t, verifyErr)
	assert.Equal(t, "user-1", payload.UserID)
	assert.True(t, mr.Exists(SessionKey(payload.JTI)))
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	devices, listErr := service.ListAllUserDevices(ctx, "user-1")
	require.Nil(t, listErr)
	require.Len(t, devices, 1)
	assert.Equal(t, "Unknown Device", devices[0].Device)
	assert.Equal(t, "10.0.0.1", devices[0].IP)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	ctx := context.Background()
	service, repo, _, _ := newTestService(t)

	repo.On("FindByUsername", ctx, "anna").Return(&entity.UserEntity{ID: "user-1", PasswordHash: hashed(t, "geheim123"), IsActive: true}, nil)

	_, err := service.LoginUser(ctx, auth_dto.LoginUserRequest{Identifier: "anna", Password: "falsch"}, auth_dto.LoginMetadata{})

	require.NotNil(t, err)
	assert.Equal(t, 401, err.Code)
	assert.Equal(t, "auth.unauthorized", err.MessageKey)
}

func TestLoginUser_UnknownUser(t *testing.T) {
	ctx := context.Background()
	service, repo, _, _ := newTestService(t)

	repo.On("FindByUsername", ctx, "ghost").Return(nil, app_errors.NewNotFoundError("user_not_found"))

	_, err := service.LoginUser(ctx, auth_dto.LoginUserRequest{Identifier: "ghost", Password: "x"}, auth_dto.LoginMetadata{})

	require.NotNil(t, err)
	assert.Equal(t, 401, err.Code)
}

func TestLogoutUser(t *testing.T) {
	ctx := context.Background()
	service, repo, _, mr := newTestService(t)

	repo.On("FindByUsername", ctx, "anna").Return(&entity.UserEntity{ID: "user-1", PasswordHash: hashed(t, "geheim123"), IsActive: true}, nil)
	resp, err := service.LoginUser(ctx, auth_dto.LoginUserRequest{Identifier: "anna", Password: "geheim123"}, auth_dto.LoginMetadata{})
	require.Nil(t, err)
	payload, _ := service.paseto.VerifyToken(resp.Token)

	require.Nil(t, service.LogoutUser(ctx, payload.JTI))
	assert.False(t, mr.Exists(SessionKey(payload.JTI)))

	// Zweites Logout: Session existiert nicht mehr.
	err = service.LogoutUser(ctx, payload.JTI)
	require.NotNil(t, err)
	assert.Equal(t, 401, err.Code)
}

func TestChangePassword_DropsOtherSessions(t *testing.T) {
	ctx := context.Background()
	service, repo, userRepo, mr := newTestService(t)

	user := &entity.UserEntity{ID: "user-1", Username: "anna", PasswordHash: hashed(t, "geheim123"), IsActive: true}
	repo.On("FindByUsername", ctx, "anna").Return(user, nil)

	var jtis []string
	for i := 0; i < 2; i++ {
		resp, err := service.LoginUser(ctx, auth_dto.LoginUserRequest{Identifier: "anna", Password: "geheim123"}, auth_dto.LoginMetadata{})
		require.Nil(t, err)
		p, _ := service.paseto.VerifyToken(resp.Token)
		jtis = append(jtis, p.JTI)
	}

	userRepo.On("FindByUserID", ctx, "user-1").Return(user, nil)
	userRepo.On("UpdatePassword", ctx, "user-1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	err := service.ChangePassword(ctx, "user-1", jtis[0], auth_dto.ChangePasswordRequest{
		CurrentPassword:    "geheim123",
		NewPassword:        "nochgeheimer",
		ConfirmNewPassword: "nochgeheimer",
	})

	require.Nil(t, err)
	assert.True(t, mr.Exists(SessionKey(jtis[0])))
	assert.False(t, mr.Exists(SessionKey(jtis[1])))
	userRepo.AssertExpectations(t)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	ctx := context.Background()
	service, _, userRepo, _ := newTestService(t)

	userRepo.On("FindByUserID", ctx, "user-1").Return(&entity.UserEntity{ID: "user-1", PasswordHash: hashed(t, "geheim123")}, nil)

	err := service.ChangePassword(ctx, "user-1", "s-1", auth_dto.ChangePasswordRequest{CurrentPassword: "falsch", NewPassword: "nochgeheimer"})

	require.NotNil(t, err)
	assert.Equal(t, "auth.wrong_password", err.MessageKey)
	userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogoutAllDevices(t *testing.T) {
	ctx := context.Background()
	service, repo, _, mr := newTestService(t)

	repo.On("FindByUsername", ctx, "anna").Return(&entity.UserEntity{ID: "user-1", PasswordHash: hashed(t, "geheim123"), IsActive: true}, nil)
	for i := 0; i < 3; i++ {
		_, err := service.LoginUser(ctx, auth_dto.LoginUserRequest{Identifier: "anna", Password: "geheim123"}, auth_dto.LoginMetadata{})
		require.Nil(t, err)
	}

	require.Nil(t, service.LogoutAllDevices(ctx, "user-1"))

	devices, err := service.ListAllUserDevices(ctx, "user-1")
	require.Nil(t, err)
	assert.Empty(t, devices)
	assert.False(t, mr.Exists(UserSessionsKey("user-1")))
}
