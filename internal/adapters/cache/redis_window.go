package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	errFailedToRecordHit = "failed to record rate limit hit"
	windowKeyPrefix      = "ratelimit:"
)

// RedisWindowStore keeps per-key hit timestamps in a Redis sorted set,
// so the window is shared across service instances.
type RedisWindowStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisWindowStore creates a Redis-backed window store.
func NewRedisWindowStore(client *redis.Client) *RedisWindowStore {
	return &RedisWindowStore{
		client: client,
		now:    time.Now,
	}
}

// Hit trims entries older than the window, then admits the call only
// when the surviving cardinality is below the limit. A rejected hit
// adds nothing to the set, so a throttled caller recovers as soon as
// old hits age out.
func (s *RedisWindowStore) Hit(ctx context.Context, key string, limit int, window time.Duration) (int, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "Hit"), zap.String("key", key))

	now := s.now()
	cutoff := now.Add(-window).UnixNano()
	member := strconv.FormatInt(now.UnixNano(), 10)
	redisKey := windowKeyPrefix + key

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(cutoff, 10))
	card := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error(ctx, errFailedToRecordHit, zap.Error(err))
		return 0, false, fmt.Errorf("%s: %w", errFailedToRecordHit, err)
	}

	count := int(card.Val())
	if count >= limit {
		return count, false, nil
	}

	pipe = s.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error(ctx, errFailedToRecordHit, zap.Error(err))
		return 0, false, fmt.Errorf("%s: %w", errFailedToRecordHit, err)
	}

	return count + 1, true, nil
}

var _ svc.WindowStore = (*RedisWindowStore)(nil)
