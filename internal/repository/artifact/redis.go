package artifact

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps artifact blobs in Redis so several serving instances can
// load the same generation without a shared filesystem. Blobs are written
// without TTL; a retrain simply overwrites each key.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func (s *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	err := s.client.Set(ctx, s.key(key), data, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to store artifact %q in Redis: %w", key, err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("artifact %q not found", key)
		}
		return nil, fmt.Errorf("failed to read artifact %q from Redis: %w", key, err)
	}

	return data, nil
}

func (s *RedisStore) key(key string) string {
	return "recommender:artifact:" + key
}
