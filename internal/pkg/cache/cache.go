// Package cache stores rendered pages for a bounded time. Backends share one
// Store interface: memory for a single process, redis when several
// processes serve the same site, noop when caching is switched off.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by Get for absent or expired keys
var ErrCacheMiss = errors.New("cache miss")

// Store is a byte cache with per-entry expiry
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key; ttl <= 0 keeps it until deleted
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear drops every entry this store owns
	Clear(ctx context.Context) error
	Close() error
}

// Backend names a Store implementation
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendNone   Backend = "none"
)

// Config selects and configures a backend
type Config struct {
	Backend Backend
	// RedisURL, e.g. redis://localhost:6379/0
	RedisURL string
	// KeyPrefix namespaces redis keys so Clear never touches foreign data
	KeyPrefix string
	// JanitorInterval is how often the memory backend sweeps expired entries
	JanitorInterval time.Duration
}

// New builds the configured backend
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		interval := cfg.JanitorInterval
		if interval == 0 {
			interval = 30 * time.Second
		}
		return NewMemoryStore(interval), nil
	case BackendRedis:
		return NewRedisStore(cfg.RedisURL, cfg.KeyPrefix)
	case BackendNone:
		return NoopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
