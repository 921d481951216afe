package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowBound(t *testing.T) {
	rl := NewRateLimiter(5)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(), "request %d should be within the window", i)
	}
	assert.False(t, rl.Allow(), "sixth request in the window is rejected")
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := NewRateLimiter(2)
	rl.window = 50 * time.Millisecond

	require.True(t, rl.Allow())
	require.True(t, rl.Allow())
	require.False(t, rl.Allow())

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow(), "slots free up after the window passes")
}

func TestRateLimiter_WaitBlocksUntilSlot(t *testing.T) {
	rl := NewRateLimiter(1)
	rl.window = 30 * time.Millisecond

	require.True(t, rl.Allow())

	start := time.Now()
	err := rl.Wait(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond, "Wait blocks for the window")
}

func TestRateLimiter_WaitHonorsContext(t *testing.T) {
	rl := NewRateLimiter(1)
	require.True(t, rl.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
