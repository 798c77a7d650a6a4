package cache

import (
	"context"
	"time"

	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

// Cache ist ein reiner Lesebeschleuniger. Get meldet (false, nil) bei einem Cache-Miss.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, *app_errors.AppError)
	Set(ctx context.Context, key string, value any, ttl time.Duration) *app_errors.AppError
	Del(ctx context.Context, keys ...string) error
}
