package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests advance time deterministically
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLimiter_Allow_WithinLimit(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiterWithClock(NewCacheStore(), 15*time.Minute, 5, clock.Now)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("1.2.3.4"), "request %d should be allowed", i+1)
	}
}

func TestLimiter_Allow_RejectsOverLimit(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiterWithClock(NewCacheStore(), 15*time.Minute, 5, clock.Now)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("1.2.3.4"))
	}

	// 6th request within the window is rejected
	assert.False(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))
}

func TestLimiter_Allow_ResetsAfterWindow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiterWithClock(NewCacheStore(), 15*time.Minute, 5, clock.Now)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("1.2.3.4"))
	}
	assert.False(t, limiter.Allow("1.2.3.4"))

	// Just past windowResetAt the counter starts over
	clock.Advance(15*time.Minute + time.Millisecond)
	assert.True(t, limiter.Allow("1.2.3.4"))
}

func TestLimiter_Allow_AtExactWindowBoundary(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiterWithClock(NewCacheStore(), 15*time.Minute, 5, clock.Now)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("1.2.3.4"))
	}

	// Exactly at windowResetAt the old window still applies
	clock.Advance(15 * time.Minute)
	assert.False(t, limiter.Allow("1.2.3.4"))
}

func TestLimiter_Allow_KeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiterWithClock(NewCacheStore(), 15*time.Minute, 2, clock.Now)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	// A different client key has its own counter
	assert.True(t, limiter.Allow("5.6.7.8"))
}

func TestLimiter_Allow_SharedUnknownBucket(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiterWithClock(NewCacheStore(), 15*time.Minute, 2, clock.Now)

	// Clients without a resolvable address all land in one bucket
	assert.True(t, limiter.Allow("unknown"))
	assert.True(t, limiter.Allow("unknown"))
	assert.False(t, limiter.Allow("unknown"))
}

func TestLimiter_Allow_Concurrent(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiterWithClock(NewCacheStore(), 15*time.Minute, 50, clock.Now)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("1.2.3.4") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// The read-increment-write sequence is serialized, so exactly the
	// limit passes even under concurrency
	assert.Equal(t, 50, allowed)
}
