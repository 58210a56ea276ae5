package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKV(t *testing.T) (*miniredis.Miniredis, *RedisKV) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisKV(client)
}

func TestRedisKV_GetSetDelete(t *testing.T) {
	_, kv := setupKV(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "stats:dashboard")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "stats:dashboard", `{"citizens":12}`, time.Minute))

	val, err := kv.Get(ctx, "stats:dashboard")
	require.NoError(t, err)
	assert.Equal(t, `{"citizens":12}`, val)

	require.NoError(t, kv.Delete(ctx, "stats:dashboard"))
	_, err = kv.Get(ctx, "stats:dashboard")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisKV_TTLExpires(t *testing.T) {
	mr, kv := setupKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}
