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

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestClient_SetGet(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tasks:list", []byte(`[{"id":1}]`), time.Minute))

	got, err := c.Get(ctx, "tasks:list")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), got)
}

func TestClient_GetMissing(t *testing.T) {
	c, _ := newTestClient(t)

	got, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_TTLExpiry(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tasks:list", []byte("v"), time.Minute))
	assert.True(t, c.Exists(ctx, "tasks:list"))
	assert.Greater(t, c.TTL(ctx, "tasks:list"), time.Duration(0))

	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "tasks:list")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, c.Exists(ctx, "tasks:list"))
	assert.Equal(t, time.Duration(-1), c.TTL(ctx, "tasks:list"))
}

func TestClient_DeleteIdempotent(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "users:1", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "users:1"))
	assert.False(t, c.Exists(ctx, "users:1"))

	// Deleting an absent key is a no-op, not an error.
	require.NoError(t, c.Delete(ctx, "users:1"))
	require.NoError(t, c.Delete(ctx))
}

func TestClient_DeleteByPattern(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for _, key := range []string{"tasks:list", "tasks:status:pending", "tasks:status:completed", "users:list"} {
		require.NoError(t, c.Set(ctx, key, []byte("v"), time.Minute))
	}

	require.NoError(t, c.DeleteByPattern(ctx, "tasks:status:*"))

	assert.False(t, c.Exists(ctx, "tasks:status:pending"))
	assert.False(t, c.Exists(ctx, "tasks:status:completed"))
	assert.True(t, c.Exists(ctx, "tasks:list"))
	assert.True(t, c.Exists(ctx, "users:list"))

	// No matches is a no-op.
	require.NoError(t, c.DeleteByPattern(ctx, "nothing:*"))
}

func TestClient_FailsOpenWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	mr.Close()

	// Every operation degrades to a miss instead of failing the caller.
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.DeleteByPattern(ctx, "*"))
	assert.False(t, c.Exists(ctx, "k"))
	assert.Equal(t, time.Duration(-1), c.TTL(ctx, "k"))
}

func TestClient_NilSafe(t *testing.T) {
	var c *Client
	ctx := context.Background()

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, c.Exists(ctx, "k"))
}

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "users:7", UserByID(7))
	assert.Equal(t, "users:email:a@b.c", UserByEmail("a@b.c"))
	assert.Equal(t, "tasks:9", TaskByID(9))
	assert.Equal(t, "tasks:status:pending", TasksByStatus("pending"))
	assert.Equal(t, "tasks:assignee:a@b.c", TasksByAssignee("a@b.c"))
	assert.Equal(t, "businesses:abc", BusinessByID("abc"))
}
