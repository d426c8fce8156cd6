package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_BudgetPerKey(t *testing.T) {
	limiter := NewLimiter(2, time.Minute)

	assert.True(t, limiter.Allow("0xplayer1"))
	assert.True(t, limiter.Allow("0xplayer1"))
	assert.False(t, limiter.Allow("0xplayer1"))

	// Another key has its own budget
	assert.True(t, limiter.Allow("0xplayer2"))
}

func TestAllow_WindowReset(t *testing.T) {
	limiter := NewLimiter(1, time.Minute)
	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	current := base
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Allow("0xplayer1"))
	assert.False(t, limiter.Allow("0xplayer1"))

	current = base.Add(61 * time.Second)
	assert.True(t, limiter.Allow("0xplayer1"))
}

func TestAllow_WindowsAreIndependentPerKey(t *testing.T) {
	limiter := NewLimiter(1, time.Minute)
	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	current := base
	limiter.now = func() time.Time { return current }

	// First key exhausts its budget at t=0
	assert.True(t, limiter.Allow("0xplayer1"))
	assert.False(t, limiter.Allow("0xplayer1"))

	// Second key starts its own window 40s later
	current = base.Add(40 * time.Second)
	assert.True(t, limiter.Allow("0xplayer2"))
	assert.False(t, limiter.Allow("0xplayer2"))

	// At t=70s the first key's window has expired but the second key is
	// only 30s into its own; its budget must not refresh early
	current = base.Add(70 * time.Second)
	assert.True(t, limiter.Allow("0xplayer1"))
	assert.False(t, limiter.Allow("0xplayer2"))
}

func TestAllow_Concurrent(t *testing.T) {
	limiter := NewLimiter(50, time.Minute)
	done := make(chan bool, 100)

	for i := 0; i < 100; i++ {
		go func() {
			done <- limiter.Allow("shared")
		}()
	}

	allowed := 0
	for i := 0; i < 100; i++ {
		if <-done {
			allowed++
		}
	}
	assert.Equal(t, 50, allowed)
}
