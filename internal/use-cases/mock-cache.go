package use_cases

import (
	"context"
	"sync"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/cache"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

var _ cache.Cache = (*MockCache)(nil)

// MockCache: nicht gesetzte Fn-Felder verhalten sich wie ein leerer Cache.
type MockCache struct {
	GetFn func(ctx context.Context, key string, dest any) (bool, *app_errors.AppError)
	SetFn func(ctx context.Context, key string, val any, ttl time.Duration) *app_errors.AppError
	DelFn func(ctx context.Context, keys ...string) error

	mu        sync.Mutex
	GetCalled int
	SetCalled int
	DelCalled int
	DelKeys   []string
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, *app_errors.AppError) {
	m.mu.Lock()
	m.GetCalled++
	m.mu.Unlock()
	if m.GetFn == nil {
		return false, nil
	}
	return m.GetFn(ctx, key, dest)
}

func (m *MockCache) Set(ctx context.Context, key string, val any, ttl time.Duration) *app_errors.AppError {
	m.mu.Lock()
	m.SetCalled++
	m.mu.Unlock()
	if m.SetFn == nil {
		return nil
	}
	return m.SetFn(ctx, key, val, ttl)
}

func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	m.DelCalled++
	m.DelKeys = append(m.DelKeys, keys...)
	m.mu.Unlock()
	if m.DelFn == nil {
		return nil
	}
	return m.DelFn(ctx, keys...)
}
