package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiterEnforcesLimit(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "key")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSlidingWindowLimiterKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(1, time.Minute)

	allowed, err := limiter.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "a")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSlidingWindowLimiterReset(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(1, time.Minute)

	allowed, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "key")
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "key"))

	allowed, err = limiter.Allow(ctx, "key")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindowLimiterEvictsIdleKeys(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(3, time.Minute)

	allowed, err := limiter.Allow(ctx, "idle")
	require.NoError(t, err)
	assert.True(t, allowed)
	allowed, err = limiter.Allow(ctx, "active")
	require.NoError(t, err)
	assert.True(t, allowed)

	limiter.mu.Lock()
	require.Len(t, limiter.windows, 2)
	limiter.mu.Unlock()

	// Re-touch one key past the other's window, then sweep.
	future := time.Now().Add(2 * time.Minute)
	limiter.mu.Lock()
	limiter.windows["active"] = append(limiter.windows["active"], future)
	limiter.mu.Unlock()

	limiter.evictIdle(future)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.windows, 1)
	assert.NotContains(t, limiter.windows, "idle")
	assert.Contains(t, limiter.windows, "active")
}

func TestIPAndUserLimitersUseSeparateKeySpaces(t *testing.T) {
	ctx := context.Background()

	ipLimiter := NewIPRateLimiter(1)
	userLimiter := NewUserRateLimiter(1)

	allowed, err := ipLimiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = userLimiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}
