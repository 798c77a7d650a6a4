package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPool(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := RedisPool(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, mr.Addr(), client.Options().Addr)
}

func TestRedisPool_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := RedisPool(context.Background(), addr, "", 0)
	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestConnectPool_InvalidDSN(t *testing.T) {
	pool, err := ConnectPool(context.Background(), "::not a dsn::")
	assert.Nil(t, pool)
	assert.Error(t, err)
}
