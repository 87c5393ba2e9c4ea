package stats

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MemoryStore is the in-process Store used by tests and single-shot CLI
// runs.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]int64
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int64)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// RedisStore persists baselines across CLI runs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (int64, bool, error) {
	value, err := s.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value int64) error {
	return s.client.Set(ctx, key, value, 0).Err()
}
