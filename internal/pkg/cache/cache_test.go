package cache

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreTests checks the behaviour every backend shares
func runStoreTests(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		_, err := store.Get(ctx, "absent")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "page:/", []byte("<html>"), time.Minute))

		got, err := store.Get(ctx, "page:/")
		require.NoError(t, err)
		assert.Equal(t, []byte("<html>"), got)

		require.NoError(t, store.Delete(ctx, "page:/"))
		_, err = store.Get(ctx, "page:/")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
		require.NoError(t, store.Set(ctx, "b", []byte("2"), 0))
		require.NoError(t, store.Clear(ctx))

		_, err := store.Get(ctx, "a")
		assert.ErrorIs(t, err, ErrCacheMiss)
		_, err = store.Get(ctx, "b")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	runStoreTests(t, store)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 20*time.Second))

	advance(19 * time.Second)
	_, err := store.Get(ctx, "k")
	require.NoError(t, err)

	advance(time.Second)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	store.evictExpired()
	assert.Zero(t, store.Len())
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value, 0))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryStore_Janitor(t *testing.T) {
	store := NewMemoryStore(5 * time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", []byte("v"), time.Millisecond))
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNoopStore(t *testing.T) {
	store := NoopStore{}
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNew(t *testing.T) {
	store, err := New(Config{Backend: BackendMemory, JanitorInterval: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	require.NoError(t, store.Close())

	store, err = New(Config{Backend: BackendNone})
	require.NoError(t, err)
	assert.IsType(t, NoopStore{}, store)

	_, err = New(Config{Backend: "memcached"})
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	redisURL := os.Getenv("YATUBE_TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("YATUBE_TEST_REDIS_URL not set, skipping Redis tests")
	}

	store, err := NewRedisStore(redisURL, "yatube-test:")
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Clear(context.Background()))

	runStoreTests(t, store)
}
