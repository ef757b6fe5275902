package quota

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthlink-platform/healthlink/internal/config"
)

func setupStore(t *testing.T, cap int, tier config.Tier) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, cap, tier), mr
}

func TestConsume_UnderCap(t *testing.T) {
	s, _ := setupStore(t, 5, config.TierProd)
	ctx := context.Background()

	res, err := s.Consume(ctx)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 4, res.Remaining)
}

func TestConsume_AtAndOverCap(t *testing.T) {
	s, _ := setupStore(t, 3, config.TierProd)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := s.Consume(ctx)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "consume %d", i)
		assert.Equal(t, 3-i, res.Remaining)
	}

	res, err := s.Consume(ctx)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 4, res.Count)
}

func TestConsume_PreexistingCountAtCap(t *testing.T) {
	s, mr := setupStore(t, 10, config.TierProd)
	ctx := context.Background()

	require.NoError(t, mr.Set(s.dailyKey(), "10"))

	res, err := s.Consume(ctx)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 11, res.Count)
}

func TestConsume_FirstIncrementSetsExpiry(t *testing.T) {
	s, mr := setupStore(t, 5, config.TierProd)
	ctx := context.Background()

	_, err := s.Consume(ctx)
	require.NoError(t, err)

	ttl := mr.TTL(s.dailyKey())
	assert.Greater(t, ttl, time.Duration(0), "first increment must set a TTL")
	assert.LessOrEqual(t, ttl, 24*time.Hour+expiryMargin)

	// Second increment must not reset the TTL.
	mr.SetTTL(s.dailyKey(), time.Minute)
	_, err = s.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(s.dailyKey()))
}

func TestConsume_Concurrent(t *testing.T) {
	const cap, n = 50, 80
	s, _ := setupStore(t, cap, config.TierProd)

	var wg sync.WaitGroup
	results := make(chan Result, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Consume(context.Background())
			if err != nil {
				errs <- err
				return
			}
			results <- res
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("no consume may fail under concurrency: %v", err)
	}

	allowed := 0
	for res := range results {
		if res.Allowed {
			allowed++
		}
	}
	assert.Equal(t, cap, allowed, "exactly cap consumptions must be allowed")
}

func TestConsume_DateKeyIsKST(t *testing.T) {
	s, _ := setupStore(t, 5, config.TierProd)

	// 2026-03-01 20:00 UTC is already 2026-03-02 05:00 in UTC+9.
	s.now = func() time.Time {
		return time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, "2026-03-02", s.dateKey())
	assert.Equal(t, "global_daily_api_count:2026-03-02", s.dailyKey())

	// 19h until KST midnight, 2026-03-02T15:00Z.
	assert.Equal(t, 19*time.Hour, s.untilMidnight())
}

func TestSnapshot(t *testing.T) {
	s, mr := setupStore(t, 500, config.TierProd)
	ctx := context.Background()

	snap, err := s.CurrentSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Cap: 500, Count: 0, Remaining: 500, DateKey: s.dateKey()}, snap)

	require.NoError(t, mr.Set(s.dailyKey(), "42"))
	snap, err = s.CurrentSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, snap.Count)
	assert.Equal(t, 458, snap.Remaining)

	// Counter legitimately grows past the cap; remaining clamps at zero.
	require.NoError(t, mr.Set(s.dailyKey(), "650"))
	snap, err = s.CurrentSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 650, snap.Count)
	assert.Equal(t, 0, snap.Remaining)

	// Snapshot never consumes.
	assert.Equal(t, "650", mustGet(t, mr, s.dailyKey()))
}

func TestReset(t *testing.T) {
	s, mr := setupStore(t, 500, config.TierProd)
	ctx := context.Background()

	require.NoError(t, mr.Set(s.dailyKey(), "123"))
	require.NoError(t, s.Reset(ctx))
	assert.False(t, mr.Exists(s.dailyKey()))

	snap, err := s.CurrentSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Count)
	assert.Equal(t, 500, snap.Remaining)
}

func TestEnvironmentMatrix(t *testing.T) {
	ctx := context.Background()

	t.Run("dev without store fails open", func(t *testing.T) {
		s := NewRedisStore(nil, 500, config.TierDev)

		res, err := s.Consume(ctx)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 500, res.Remaining)

		snap, err := s.CurrentSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, snap.Count)

		require.NoError(t, s.Reset(ctx))
	})

	t.Run("prod without store fails closed", func(t *testing.T) {
		s := NewRedisStore(nil, 500, config.TierProd)

		_, err := s.Consume(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)

		_, err = s.CurrentSnapshot(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)

		assert.ErrorIs(t, s.Reset(ctx), ErrUnavailable)
	})

	t.Run("dev with failing store fails open", func(t *testing.T) {
		s, mr := setupStore(t, 500, config.TierDev)
		mr.Close()

		res, err := s.Consume(ctx)
		require.NoError(t, err)
		assert.True(t, res.Allowed)

		snap, err := s.CurrentSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 500, snap.Remaining)
	})

	t.Run("prod with failing store fails closed", func(t *testing.T) {
		s, mr := setupStore(t, 500, config.TierProd)
		mr.Close()

		_, err := s.Consume(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)

		_, err = s.CurrentSnapshot(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
