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

type payload struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	var got payload
	hit, err := s.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, s.Set(ctx, "k", payload{UserID: 4, Role: "ADMIN"}, time.Minute))
	hit, err = s.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, payload{UserID: 4, Role: "ADMIN"}, got)

	require.NoError(t, s.Del(ctx, "k"))
	hit, err = s.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedis(rdb)
	t.Cleanup(func() { _ = s.Close() })

	exercise(t, s)

	require.NoError(t, s.Set(context.Background(), "ttl", 1, time.Second))
	mr.FastForward(2 * time.Second)
	var n int
	hit, err := s.Get(context.Background(), "ttl", &n)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	exercise(t, s)

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Set(context.Background(), "ttl", 1, time.Second))
	s.now = func() time.Time { return now.Add(2 * time.Second) }

	var n int
	hit, err := s.Get(context.Background(), "ttl", &n)
	require.NoError(t, err)
	assert.False(t, hit)
}
