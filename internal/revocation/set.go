// Package revocation implements the token blacklist consulted before any
// access-token claims are trusted. Entries are keyed by the token's jti claim
// and only need to live until the token's natural expiry; after that the
// signature check alone rejects it.
package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Set records access tokens invalidated before their expiry. Add is called at
// logout, Contains on every authenticated request, so implementations must be
// safe for concurrent use.
type Set interface {
	// Add marks a token identifier as revoked until the given instant.
	Add(ctx context.Context, jti string, until time.Time) error
	// Contains reports whether the identifier has been revoked.
	Contains(ctx context.Context, jti string) (bool, error)
}

// RedisSet stores revoked identifiers as Redis keys whose TTL matches the
// token's remaining lifetime, so entries expire exactly when they stop
// mattering. Shared across replicas of the service.
type RedisSet struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisSet(rdb *redis.Client) *RedisSet {
	return &RedisSet{rdb: rdb, prefix: "revoked:"}
}

func (s *RedisSet) Add(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil // already expired, the exp check covers it
	}
	return s.rdb.Set(ctx, s.prefix+jti, "1", ttl).Err()
}

func (s *RedisSet) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.prefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemorySet is the in-process fallback used when no Redis client could be
// established at startup. Expired entries are pruned lazily on Add so the map
// cannot grow past the number of logouts within one token lifetime.
type MemorySet struct {
	mu      sync.RWMutex
	entries map[string]time.Time // jti -> revoked-until
}

func NewMemorySet() *MemorySet {
	return &MemorySet{entries: make(map[string]time.Time)}
}

func (s *MemorySet) Add(_ context.Context, jti string, until time.Time) error {
	now := time.Now()
	if !until.After(now) {
		return nil
	}
	s.mu.Lock()
	for k, exp := range s.entries {
		if exp.Before(now) {
			delete(s.entries, k)
		}
	}
	s.entries[jti] = until
	s.mu.Unlock()
	return nil
}

func (s *MemorySet) Contains(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	until, ok := s.entries[jti]
	s.mu.RUnlock()
	return ok && until.After(time.Now()), nil
}
