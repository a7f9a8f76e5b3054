package dataload

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheServesFreshData(t *testing.T) {
	cache := newTTLCache(time.Minute)
	calls := 0
	fetch := func(context.Context) (*Dataset, error) {
		calls++
		return &Dataset{LoadedAt: time.Now()}, nil
	}

	_, hit, err := cache.get(context.Background(), fetch)
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = cache.get(context.Background(), fetch)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)
}

func TestTTLCacheExpires(t *testing.T) {
	cache := newTTLCache(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	calls := 0
	fetch := func(context.Context) (*Dataset, error) {
		calls++
		return &Dataset{}, nil
	}

	_, _, err := cache.get(context.Background(), fetch)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, hit, err := cache.get(context.Background(), fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestTTLCacheInvalidate(t *testing.T) {
	cache := newTTLCache(time.Hour)
	calls := 0
	fetch := func(context.Context) (*Dataset, error) {
		calls++
		return &Dataset{}, nil
	}

	_, _, _ = cache.get(context.Background(), fetch)
	cache.invalidate()
	_, hit, err := cache.get(context.Background(), fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestTTLCacheServesStaleOnError(t *testing.T) {
	cache := newTTLCache(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	good := &Dataset{LoadedAt: now}
	_, _, err := cache.get(context.Background(), func(context.Context) (*Dataset, error) {
		return good, nil
	})
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	ds, _, err := cache.get(context.Background(), func(context.Context) (*Dataset, error) {
		return nil, errors.New("sheet unreachable")
	})
	require.NoError(t, err)
	assert.Same(t, good, ds)
}

func TestTTLCacheErrorWithNoStaleData(t *testing.T) {
	cache := newTTLCache(time.Minute)
	_, _, err := cache.get(context.Background(), func(context.Context) (*Dataset, error) {
		return nil, errors.New("sheet unreachable")
	})
	assert.Error(t, err)
}

func TestTTLCacheSingleFlight(t *testing.T) {
	cache := newTTLCache(time.Minute)

	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	fetch := func(context.Context) (*Dataset, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return &Dataset{}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := cache.get(context.Background(), fetch)
			assert.NoError(t, err)
		}()
	}

	// Give the goroutines a moment to pile onto the flight
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}
