package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const snapshotKeyPrefix = "filmapp:snapshot:"

// redisClient is the part of *redis.Client the store needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisStore struct {
	client redisClient
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRedisStore stores snapshots under filmapp:snapshot:<session>:<kind>.
// A zero ttl keeps keys until they are overwritten or deleted.
func NewRedisStore(client redisClient, ttl time.Duration, logger *logrus.Logger) *RedisStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string, kind Kind) (*string, error) {
	if err := kind.validate(); err != nil {
		return nil, err
	}

	blob, err := s.client.Get(ctx, snapshotKey(sessionID, kind)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot from Redis: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"kind":       kind,
		"size":       len(blob),
	}).Debug("Loaded snapshot from Redis")
	return &blob, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, kind Kind, blob string) error {
	if err := kind.validate(); err != nil {
		return err
	}

	if err := s.client.Set(ctx, snapshotKey(sessionID, kind), blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot to Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	keys := []string{snapshotKey(sessionID, KindCatalog), snapshotKey(sessionID, KindFavourites)}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshots from Redis: %w", err)
	}
	return nil
}

func snapshotKey(sessionID string, kind Kind) string {
	return snapshotKeyPrefix + sessionID + ":" + string(kind)
}
