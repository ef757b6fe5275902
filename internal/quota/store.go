package quota

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/healthlink-platform/healthlink/internal/config"
)

const (
	// keyPrefix namespaces the daily counter keys in Redis.
	keyPrefix = "global_daily_api_count:"

	// expiryMargin keeps a key alive slightly past local midnight so a
	// request racing the rollover still sees a consistent counter.
	expiryMargin = 120 * time.Second
)

// kst is the fixed time zone the calendar day is keyed on.
var kst = time.FixedZone("KST", 9*60*60)

// ErrUnavailable means the counter store is unreachable or not configured
// and the deployment tier requires failing closed. Callers must reject the
// triggering request rather than allow unmetered usage.
var ErrUnavailable = errors.New("quota store unavailable")

// Result is the outcome of one consumption attempt.
type Result struct {
	Allowed   bool `json:"allowed"`
	Count     int  `json:"count"`
	Remaining int  `json:"remaining"`
}

// Snapshot is the read-only view of today's counter.
type Snapshot struct {
	Cap       int    `json:"cap"`
	Count     int    `json:"count"`
	Remaining int    `json:"remaining"`
	DateKey   string `json:"dateKey"`
}

// Store meters global daily usage of the paid generation API.
type Store interface {
	// Consume atomically takes one unit of today's allowance.
	Consume(ctx context.Context) (Result, error)
	// CurrentSnapshot reads today's counter without mutating it.
	CurrentSnapshot(ctx context.Context) (Snapshot, error)
	// Reset deletes today's counter.
	Reset(ctx context.Context) error
}

// RedisStore implements Store on a single Redis INCR per consumption. The
// counter is the only cross-request shared state in the system; nothing is
// cached in-process.
//
// Failure policy depends on the deployment tier: dev fails open (unlimited
// local usage is cheap), prod fails closed (unmetered access to a paid API
// is not). A nil client means "not configured" and follows the same policy.
type RedisStore struct {
	rdb  redis.Cmdable
	cap  int
	tier config.Tier
	now  func() time.Time
}

// NewRedisStore creates a daily-cap store. rdb may be nil when no Redis is
// configured.
func NewRedisStore(rdb redis.Cmdable, cap int, tier config.Tier) *RedisStore {
	return &RedisStore{rdb: rdb, cap: cap, tier: tier, now: time.Now}
}

// Consume increments today's counter and compares against the cap. When the
// post-increment value exceeds the cap the increment is not rolled back:
// only the allow/deny outcome matters downstream, and a rollback would
// reintroduce a read-modify-write race.
func (s *RedisStore) Consume(ctx context.Context) (Result, error) {
	if s.rdb == nil {
		if s.tier == config.TierProd {
			return Result{}, fmt.Errorf("%w: redis not configured", ErrUnavailable)
		}
		return Result{Allowed: true, Remaining: s.cap}, nil
	}

	key := s.dailyKey()
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return s.failResult(fmt.Errorf("incrementing %s: %w", key, err))
	}

	// First increment of the day: make the key self-cleaning.
	if count == 1 {
		if err := s.rdb.Expire(ctx, key, s.untilMidnight()+expiryMargin).Err(); err != nil {
			return s.failResult(fmt.Errorf("setting expiry on %s: %w", key, err))
		}
	}

	if count > int64(s.cap) {
		return Result{Allowed: false, Count: int(count)}, nil
	}
	return Result{Allowed: true, Count: int(count), Remaining: s.cap - int(count)}, nil
}

// CurrentSnapshot returns today's usage without consuming.
func (s *RedisStore) CurrentSnapshot(ctx context.Context) (Snapshot, error) {
	if s.rdb == nil {
		if s.tier == config.TierProd {
			return Snapshot{}, fmt.Errorf("%w: redis not configured", ErrUnavailable)
		}
		return Snapshot{Cap: s.cap, Remaining: s.cap, DateKey: s.dateKey()}, nil
	}

	raw, err := s.rdb.Get(ctx, s.dailyKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return s.failSnapshot(fmt.Errorf("reading %s: %w", s.dailyKey(), err))
	}

	count := 0
	if raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			count = n
		}
	}

	remaining := s.cap - count
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{Cap: s.cap, Count: count, Remaining: remaining, DateKey: s.dateKey()}, nil
}

// Reset deletes today's counter, restoring the full allowance.
func (s *RedisStore) Reset(ctx context.Context) error {
	if s.rdb == nil {
		if s.tier == config.TierProd {
			return fmt.Errorf("%w: redis not configured", ErrUnavailable)
		}
		return nil
	}
	if err := s.rdb.Del(ctx, s.dailyKey()).Err(); err != nil {
		if s.tier == config.TierProd {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		slog.Warn("quota: reset failed, ignoring outside prod", "error", err)
	}
	return nil
}

func (s *RedisStore) failResult(err error) (Result, error) {
	if s.tier == config.TierProd {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	slog.Warn("quota: store failure, failing open outside prod", "error", err)
	return Result{Allowed: true, Remaining: s.cap}, nil
}

func (s *RedisStore) failSnapshot(err error) (Snapshot, error) {
	if s.tier == config.TierProd {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	slog.Warn("quota: store failure, failing open outside prod", "error", err)
	return Snapshot{Cap: s.cap, Remaining: s.cap, DateKey: s.dateKey()}, nil
}

// dateKey is today's calendar date in KST.
func (s *RedisStore) dateKey() string {
	return s.now().In(kst).Format("2006-01-02")
}

func (s *RedisStore) dailyKey() string {
	return keyPrefix + s.dateKey()
}

// untilMidnight is the duration until the next KST midnight.
func (s *RedisStore) untilMidnight() time.Duration {
	now := s.now().In(kst)
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, kst)
	return next.Sub(now)
}
