package ratelimit

import (
	"testing"
	"time"
)

func TestKeyedLimiterBurstAndRefill(t *testing.T) {
	clock := newMockClock()
	limiter := NewKeyed(1, 2, clock)

	if !limiter.Allow("203.0.113.9") || !limiter.Allow("203.0.113.9") {
		t.Fatal("burst of two should be allowed")
	}
	if limiter.Allow("203.0.113.9") {
		t.Fatal("third request in the same instant should be rejected")
	}
	if !limiter.Allow("198.51.100.1") {
		t.Fatal("other keys have their own bucket")
	}

	clock.Advance(time.Second)
	if !limiter.Allow("203.0.113.9") {
		t.Fatal("one token should refill after a second")
	}
}

func TestKeyedLimiterDropsIdleKeys(t *testing.T) {
	clock := newMockClock()
	limiter := NewKeyed(5, 5, clock)

	limiter.Allow("a")
	limiter.Allow("b")
	if limiter.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", limiter.Len())
	}

	clock.Advance(keyedIdleTTL + time.Second)
	limiter.Allow("c")
	if limiter.Len() != 1 {
		t.Fatalf("expected idle keys to be dropped, got %d", limiter.Len())
	}
}
