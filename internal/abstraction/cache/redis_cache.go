package cache

import (
	"context"
	"errors"
	"time"

	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(redis *redis.Client) *RedisCache {
	return &RedisCache{client: redis}
}

func (r *RedisCache) Get(ctx context.Context, key string, dest any) (bool, *app_errors.AppError) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, app_errors.NewInternalError(err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, app_errors.NewInternalError(err)
	}
	return true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *app_errors.AppError {
	bytes, err := json.Marshal(value)
	if err != nil {
		return app_errors.NewInternalError(err)
	}

	if err := r.client.Set(ctx, key, bytes, ttl).Err(); err != nil {
		return app_errors.NewInternalError(err)
	}
	return nil
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
