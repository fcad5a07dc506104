package session

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside_auth/internal/feature/auth/usecase"
)

// setupTestRedis はテスト用のminiredisインスタンスを生成します。
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestNewKVRedis(t *testing.T) {
	client, _ := setupTestRedis(t)

	assert.Equal(t, "flags", NewKVRedis(client, "flags").prefix)
	assert.Equal(t, "kv", NewKVRedis(client, "").prefix)
}

func TestKVRedis_SetGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	store := NewKVRedis(client, "kv")

	_, err := store.Get(ctx, "isAuthenticated")
	assert.ErrorIs(t, err, usecase.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "isAuthenticated", "true"))

	v, err := store.Get(ctx, "isAuthenticated")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	raw, err := mr.Get("kv:isAuthenticated")
	require.NoError(t, err)
	assert.Equal(t, "true", raw)
	assert.Zero(t, mr.TTL("kv:isAuthenticated"), "flag must not expire")

	require.NoError(t, store.Set(ctx, "isAuthenticated", "false"))
	v, err = store.Get(ctx, "isAuthenticated")
	require.NoError(t, err)
	assert.Equal(t, "false", v)
}

func TestKVRedis_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	store := NewKVRedis(client, "kv")

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))

	require.NoError(t, store.Delete(ctx, "a", "b", "missing"))
	assert.False(t, mr.Exists("kv:a"))
	assert.False(t, mr.Exists("kv:b"))

	require.NoError(t, store.Delete(ctx))
}

func TestKVRedis_WithSessionFlags(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	flags := usecase.NewSessionFlags(NewKVRedis(client, "kv"), "session:c1")

	require.NoError(t, flags.SetAuthenticated(ctx, "alice"))
	mr.CheckGet(t, "kv:session:c1:isAuthenticated", "true")
	mr.CheckGet(t, "kv:session:c1:user", "alice")

	ok, err := flags.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, flags.Clear(ctx))
	assert.Empty(t, mr.Keys())
}

func TestKVRedis_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("READONLY You can't write against a read only replica")

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	store := NewKVRedis(rdb, "kv")

	mock.ExpectGet("kv:user").SetErr(boom)
	mock.ExpectSet("kv:user", "alice", 0).SetErr(boom)
	mock.ExpectDel("kv:user").SetErr(boom)

	_, err := store.Get(ctx, "user")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, usecase.ErrKeyNotFound)

	assert.ErrorIs(t, store.Set(ctx, "user", "alice"), boom)
	assert.ErrorIs(t, store.Delete(ctx, "user"), boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
