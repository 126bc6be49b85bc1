package cache

import (
	"context"
	"time"
)

// NoopStore never stores anything; every Get misses
type NoopStore struct{}

func (NoopStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, ErrCacheMiss }

func (NoopStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (NoopStore) Delete(ctx context.Context, key string) error { return nil }

func (NoopStore) Clear(ctx context.Context) error { return nil }

func (NoopStore) Close() error { return nil }
