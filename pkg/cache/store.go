package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates no snapshot exists for the requested key.
var ErrCacheMiss = errors.New("cache miss")

// Store is the cache capability the driver owns. The read/write discipline
// (check-then-use, single writer) is the caller's responsibility.
type Store interface {
	// Get retrieves a snapshot by key. Returns ErrCacheMiss when absent.
	Get(ctx context.Context, key Key) (*Entry, error)

	// Put stores a snapshot under key.
	Put(ctx context.Context, key Key, entry *Entry) error
}

// RedisStore persists snapshots in Redis with a fixed TTL.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a Redis-backed snapshot store.
func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisStore{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Get retrieves a snapshot by key.
func (s *RedisStore) Get(ctx context.Context, key Key) (*Entry, error) {
	data, err := s.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			CacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("unmarshal cache entry: %w", err)
	}

	CacheHits.WithLabelValues("redis").Inc()
	return &entry, nil
}

// Put stores a snapshot under key with the store's TTL.
func (s *RedisStore) Put(ctx context.Context, key Key, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("put").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := s.redis.Set(ctx, key.String(), data, s.ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("put").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}
