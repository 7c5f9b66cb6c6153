// Package cache provides an optional Redis-backed response cache for GET
// requests against the upstream API.
//
// The upstream sends no Expires or ETag headers, so entries live for a
// fixed, configurable TTL instead of a header-derived one.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates the requested key was not found in cache.
var ErrCacheMiss = errors.New("cache miss")

// DefaultTTL is the fallback entry lifetime when none is configured.
const DefaultTTL = 60 * time.Second

// Store handles caching of raw response bodies with a Redis backend.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore creates a cache store. A zero or negative ttl falls back to
// DefaultTTL.
func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Get retrieves a cached response body.
// Returns ErrCacheMiss if the key doesn't exist or has expired.
func (s *Store) Get(ctx context.Context, key Key) ([]byte, error) {
	data, err := s.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			Misses.Inc()
			return nil, ErrCacheMiss
		}
		Errors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	Hits.WithLabelValues("redis").Inc()
	return data, nil
}

// Set stores a response body under the configured TTL.
func (s *Store) Set(ctx context.Context, key Key, body []byte) error {
	if err := s.redis.Set(ctx, key.String(), body, s.ttl).Err(); err != nil {
		Errors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	Size.WithLabelValues("redis").Add(float64(len(body)))
	return nil
}

// Delete removes a cached response.
func (s *Store) Delete(ctx context.Context, key Key) error {
	if err := s.redis.Del(ctx, key.String()).Err(); err != nil {
		Errors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
