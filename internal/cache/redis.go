// Package cache stores deep search results in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix namespaces every key written by the store.
	DefaultPrefix = "deepsearch:results:"
	// DefaultTTL is how long a cached result list stays valid.
	DefaultTTL = 10 * time.Minute
)

// RedisConfig configures the Redis-backed store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// RedisStore is a TTL-bounded byte store on top of go-redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Get returns the stored value for id. A missing key is reported as
// found == false with a nil error.
func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

// Set stores data under id with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, id string, data []byte) error {
	return s.client.Set(ctx, s.key(id), data, s.ttl).Err()
}

// TTL returns the expiry applied to new entries.
func (s *RedisStore) TTL() time.Duration {
	return s.ttl
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
