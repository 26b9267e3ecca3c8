package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/agenttools/tool"
)

func TestRedisCommand(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	opts := RedisOptions{Addr: mr.Addr()}

	t.Run("ping", func(t *testing.T) {
		res, err := RedisCommand(ctx, opts, "ping", "", "")
		require.NoError(t, err)
		assert.Equal(t, "PONG", res.Value)
	})

	t.Run("set and get", func(t *testing.T) {
		res, err := RedisCommand(ctx, opts, "set", "greeting", "hello")
		require.NoError(t, err)
		assert.Equal(t, "OK", res.Value)

		res, err = RedisCommand(ctx, opts, "get", "greeting", "")
		require.NoError(t, err)
		assert.True(t, res.Found)
		assert.Equal(t, "hello", res.Value)
	})

	t.Run("get missing reports found=false", func(t *testing.T) {
		res, err := RedisCommand(ctx, opts, "get", "absent", "")
		require.NoError(t, err)
		assert.False(t, res.Found)
		assert.Empty(t, res.Value)
	})

	t.Run("exists and del", func(t *testing.T) {
		_, err := RedisCommand(ctx, opts, "set", "doomed", "x")
		require.NoError(t, err)

		res, err := RedisCommand(ctx, opts, "exists", "doomed", "")
		require.NoError(t, err)
		assert.True(t, res.Found)

		res, err = RedisCommand(ctx, opts, "del", "doomed", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Number)

		res, err = RedisCommand(ctx, opts, "exists", "doomed", "")
		require.NoError(t, err)
		assert.False(t, res.Found)
	})

	t.Run("keys pattern", func(t *testing.T) {
		_, err := RedisCommand(ctx, opts, "set", "user:1", "a")
		require.NoError(t, err)
		_, err = RedisCommand(ctx, opts, "set", "user:2", "b")
		require.NoError(t, err)

		res, err := RedisCommand(ctx, opts, "keys", "user:*", "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Number)
		assert.ElementsMatch(t, []string{"user:1", "user:2"}, res.Values)
	})

	t.Run("ttl", func(t *testing.T) {
		withTTL := RedisOptions{Addr: mr.Addr(), TTLSeconds: 60}
		_, err := RedisCommand(ctx, withTTL, "set", "expiring", "x")
		require.NoError(t, err)

		res, err := RedisCommand(ctx, opts, "ttl", "expiring", "")
		require.NoError(t, err)
		assert.True(t, res.Found)
		assert.Positive(t, res.Number)

		res, err = RedisCommand(ctx, opts, "ttl", "greeting", "")
		require.NoError(t, err)
		assert.Equal(t, int64(-1), res.Number, "no expiration")

		res, err = RedisCommand(ctx, opts, "ttl", "never-set", "")
		require.NoError(t, err)
		assert.False(t, res.Found)
		assert.Equal(t, int64(-2), res.Number)
	})

	t.Run("incr and dbsize", func(t *testing.T) {
		res, err := RedisCommand(ctx, opts, "incr", "counter", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Number)

		res, err = RedisCommand(ctx, opts, "incr", "counter", "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Number)

		res, err = RedisCommand(ctx, opts, "dbsize", "", "")
		require.NoError(t, err)
		assert.Positive(t, res.Number)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := RedisCommand(ctx, RedisOptions{}, "ping", "", "")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)

		_, err = RedisCommand(ctx, opts, "flushall", "", "")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)

		_, err = RedisCommand(ctx, opts, "get", "", "")
		assert.ErrorIs(t, err, tool.ErrInvalidInput)
	})
}
