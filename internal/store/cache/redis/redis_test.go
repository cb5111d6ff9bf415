package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/router-api/internal/store/cache"
	"github.com/nexusai/router-api/pkg/api"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client), mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	models := []api.Model{
		{ID: "llama-3.1-8b-instant", Provider: "groq", CostPer1KTokens: 0.00005},
	}
	require.NoError(t, c.Set(ctx, "models:catalog", models, time.Minute))

	var got []api.Model
	require.NoError(t, c.Get(ctx, "models:catalog", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "llama-3.1-8b-instant", got[0].ID)
}

func TestRedisCache_MissOnAbsentKey(t *testing.T) {
	c, _ := newTestCache(t)

	var got []api.Model
	err := c.Get(context.Background(), "nope", &got)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestRedisCache_MissAfterExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short-lived", "value", time.Second))
	mr.FastForward(2 * time.Second)

	var got string
	err := c.Get(ctx, "short-lived", &got)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	var got string
	assert.ErrorIs(t, c.Get(ctx, "k", &got), cache.ErrMiss)
}
