package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commutewise/backend/internal/domain"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheWithClient(client), mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "USA", "0.914:USD", 24*time.Hour))

	got, err := cache.Get(ctx, "USA")
	require.NoError(t, err)
	assert.Equal(t, "0.914:USD", got)
}

func TestRedisCache_Get_CacheMiss(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	_, err := cache.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Exists(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "USA")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.Set(ctx, "USA", "0.914:USD", 24*time.Hour))

	exists, err = cache.Exists(ctx, "USA")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisCache_Set_AppliesTTL(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "USA", "0.914:USD", 86400*time.Second))
	assert.Equal(t, 86400*time.Second, mr.TTL("USA"))

	// Entry expires once the TTL elapses.
	mr.FastForward(86401 * time.Second)
	_, err := cache.Get(ctx, "USA")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Set_ResetsTTLOnRewrite(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "USA", "0.914:USD", 86400*time.Second))
	mr.FastForward(80000 * time.Second)

	require.NoError(t, cache.Set(ctx, "USA", "0.920:USD", 86400*time.Second))
	assert.Equal(t, 86400*time.Second, mr.TTL("USA"))

	got, err := cache.Get(ctx, "USA")
	require.NoError(t, err)
	assert.Equal(t, "0.920:USD", got)
}

func TestRedisCache_ReadDoesNotTouchTTL(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "USA", "0.914:USD", 86400*time.Second))

	for i := 0; i < 3; i++ {
		_, err := cache.Get(ctx, "USA")
		require.NoError(t, err)
	}
	assert.Equal(t, 86400*time.Second, mr.TTL("USA"))
}

func TestRedisCache_Delete(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "USA", "0.914:USD", time.Minute))
	require.NoError(t, cache.Delete(ctx, "USA"))

	_, err := cache.Get(ctx, "USA")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}
