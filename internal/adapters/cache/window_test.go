package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastebridge/internal/adapters/cache"
	"pastebridge/pkg/logger"
)

func mockRedisServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestMemoryWindowStore(t *testing.T) {
	ctx := context.Background()

	t.Run("counts hits inside the window", func(t *testing.T) {
		store := cache.NewMemoryWindowStore()

		for i := 1; i <= 5; i++ {
			count, allowed, err := store.Hit(ctx, "create:1.2.3.4", 100, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, i, count)
		}
	})

	t.Run("rejects at the limit", func(t *testing.T) {
		store := cache.NewMemoryWindowStore()

		for i := 0; i < 3; i++ {
			_, allowed, err := store.Hit(ctx, "create:1.2.3.4", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		count, allowed, err := store.Hit(ctx, "create:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 3, count)
	})

	t.Run("keys are independent", func(t *testing.T) {
		store := cache.NewMemoryWindowStore()

		_, _, err := store.Hit(ctx, "create:1.2.3.4", 100, time.Minute)
		require.NoError(t, err)

		count, allowed, err := store.Hit(ctx, "create:5.6.7.8", 100, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, count)
	})

	t.Run("old hits fall out of the window", func(t *testing.T) {
		store := cache.NewMemoryWindowStore()

		for i := 0; i < 3; i++ {
			_, _, err := store.Hit(ctx, "append:1.2.3.4", 100, 20*time.Millisecond)
			require.NoError(t, err)
		}
		time.Sleep(30 * time.Millisecond)

		count, allowed, err := store.Hit(ctx, "append:1.2.3.4", 100, 20*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, count)
	})

	t.Run("rejected hits record nothing", func(t *testing.T) {
		store := cache.NewMemoryWindowStore()

		_, allowed, err := store.Hit(ctx, "auth:1.2.3.4", 1, 50*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Throttled retries must not refill the window.
		for i := 0; i < 3; i++ {
			_, allowed, err = store.Hit(ctx, "auth:1.2.3.4", 1, 50*time.Millisecond)
			require.NoError(t, err)
			assert.False(t, allowed)
		}

		time.Sleep(60 * time.Millisecond)

		count, allowed, err := store.Hit(ctx, "auth:1.2.3.4", 1, 50*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed, "caller must be readmitted once the admitted hit ages out")
		assert.Equal(t, 1, count)
	})

	t.Run("parallel hits are all counted", func(t *testing.T) {
		store := cache.NewMemoryWindowStore()

		done := make(chan struct{})
		for i := 0; i < 10; i++ {
			go func() {
				defer func() { done <- struct{}{} }()
				_, _, _ = store.Hit(ctx, "auth:1.2.3.4", 100, time.Minute)
			}()
		}
		for i := 0; i < 10; i++ {
			<-done
		}

		count, allowed, err := store.Hit(ctx, "auth:1.2.3.4", 100, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 11, count)
	})
}

func TestRedisWindowStore(t *testing.T) {
	ctx := testContext(t)

	newStore := func(t *testing.T) (*cache.RedisWindowStore, *miniredis.Miniredis) {
		s := mockRedisServer(t)
		client := redis.NewClient(&redis.Options{Addr: s.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return cache.NewRedisWindowStore(client), s
	}

	t.Run("counts hits inside the window", func(t *testing.T) {
		store, _ := newStore(t)

		for i := 1; i <= 5; i++ {
			count, allowed, err := store.Hit(ctx, "create:1.2.3.4", 100, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, i, count)
		}
	})

	t.Run("rejects at the limit", func(t *testing.T) {
		store, _ := newStore(t)

		for i := 0; i < 3; i++ {
			_, allowed, err := store.Hit(ctx, "create:1.2.3.4", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		count, allowed, err := store.Hit(ctx, "create:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 3, count)
	})

	t.Run("trims hits older than the window", func(t *testing.T) {
		store, s := newStore(t)

		_, _, err := store.Hit(ctx, "append:1.2.3.4", 100, 50*time.Millisecond)
		require.NoError(t, err)

		s.FastForward(100 * time.Millisecond)
		time.Sleep(60 * time.Millisecond)

		count, allowed, err := store.Hit(ctx, "append:1.2.3.4", 100, 50*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, count)
	})

	t.Run("rejected hits record nothing", func(t *testing.T) {
		store, _ := newStore(t)

		_, allowed, err := store.Hit(ctx, "auth:1.2.3.4", 1, 50*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed)

		for i := 0; i < 3; i++ {
			_, allowed, err = store.Hit(ctx, "auth:1.2.3.4", 1, 50*time.Millisecond)
			require.NoError(t, err)
			assert.False(t, allowed)
		}

		time.Sleep(60 * time.Millisecond)

		count, allowed, err := store.Hit(ctx, "auth:1.2.3.4", 1, 50*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed, "caller must be readmitted once the admitted hit ages out")
		assert.Equal(t, 1, count)
	})

	t.Run("sets a TTL so idle keys disappear", func(t *testing.T) {
		store, s := newStore(t)

		_, _, err := store.Hit(ctx, "feedback:1.2.3.4", 100, time.Minute)
		require.NoError(t, err)

		ttl := s.TTL(fmt.Sprintf("ratelimit:%s", "feedback:1.2.3.4"))
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("closed connection surfaces an error", func(t *testing.T) {
		store, s := newStore(t)
		s.Close()

		_, _, err := store.Hit(ctx, "create:1.2.3.4", 100, time.Minute)
		require.Error(t, err)
	})
}
