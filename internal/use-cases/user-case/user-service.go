package user_case

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/cache"
	user_dto "github.com/Xenn-00/stufen-meister/internal/dtos/user-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	user_repo "github.com/Xenn-00/stufen-meister/internal/repo/user-repo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const profileTTL = 15 * time.Minute

type UserService struct {
	cache cache.Cache
	repo  user_repo.UserRepoContract
}

func NewUserService(db *pgxpool.Pool, redis *redis.Client) UserServiceContract {
	return &UserService{
		cache: cache.NewRedisCache(redis),
		repo:  user_repo.NewUserRepo(db),
	}
}

func profileKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

// UserSelfProfile: Redis dient nur als Cache, nicht als Source of Truth.
func (s *UserService) UserSelfProfile(ctx context.Context, userID string) (*user_dto.UserProfileResponse, *app_errors.AppError) {
	var cached user_dto.UserProfileResponse
	hit, cacheErr := s.cache.Get(ctx, profileKey(userID), &cached)
	if cacheErr != nil {
		log.Warn().Err(cacheErr.Err).Str("user_id", userID).Msg("Profil-Cache nicht lesbar")
	}
	if hit {
		return &cached, nil
	}

	user, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := user_dto.NewUserProfileResponse(user)
	if err := s.cache.Set(ctx, profileKey(userID), resp, profileTTL); err != nil {
		log.Error().Err(err.Err).Msg("Fehler beim Einstellen der Redis-Cache")
	}

	return resp, nil
}

func (s *UserService) UpdateSelfProfile(ctx context.Context, req user_dto.UpdateSelfProfileRequest, userID string) (*user_dto.UserProfileResponse, *app_errors.AppError) {
	update := entity.UserUpdate{
		Username: req.Username,
		Name:     req.Name,
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		update.Email = &email
	}

	user, err := s.repo.UpdateSelfProfile(ctx, userID, update, time.Now())
	if err != nil {
		return nil, err
	}

	if delErr := s.cache.Del(ctx, profileKey(userID)); delErr != nil {
		log.Warn().Err(delErr).Str("user_id", userID).Msg("Profil-Cache konnte nicht invalidiert werden")
	}

	return user_dto.NewUserProfileResponse(user), nil
}
