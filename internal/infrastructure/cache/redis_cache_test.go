package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_GetMissYGuardar(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "dashboard:stats")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "dashboard:stats", []byte(`{"totalProducts":3}`), time.Minute))

	data, found, err := c.Get(ctx, "dashboard:stats")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"totalProducts":3}`, string(data))
}

func TestRedisCache_ExpiraConTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "clave", []byte("valor"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, found, err := c.Get(ctx, "clave")
	require.NoError(t, err)
	assert.False(t, found)
}
