package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomrelay/internal/domain"
)

func TestRateLimiter_SlidingWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	require.NotNil(t, rl)
	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "clients are limited independently")

	now = now.Add(1100 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiter_Forget(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))

	rl.Forget("a")
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	var rl *RateLimiter
	assert.Nil(t, NewRateLimiter(0, time.Second))
	assert.Nil(t, NewRateLimiter(5, 0))
	for range 100 {
		assert.True(t, rl.Allow(domain.ClientID("a")))
	}
	rl.Forget("a")
}
