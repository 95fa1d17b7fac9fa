package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const keyedIdleTTL = 10 * time.Minute

// KeyedLimiter hands out one token bucket per key, typically a client IP.
// Buckets idle for longer than keyedIdleTTL are dropped on the next sweep.
type KeyedLimiter struct {
	limit rate.Limit
	burst int
	clock Clock

	mu        sync.Mutex
	buckets   map[string]*keyedBucket
	lastSweep time.Time
}

type keyedBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyed returns a limiter allowing rps requests per second per key with
// the given burst. A nil clock uses real time.
func NewKeyed(rps float64, burst int, clock Clock) *KeyedLimiter {
	if clock == nil {
		clock = realClock{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &KeyedLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		clock:   clock,
		buckets: make(map[string]*keyedBucket),
	}
}

// Allow reports whether key may make a request now.
func (k *KeyedLimiter) Allow(key string) bool {
	now := k.clock.Now()

	k.mu.Lock()
	if now.Sub(k.lastSweep) > keyedIdleTTL {
		for name, b := range k.buckets {
			if now.Sub(b.lastSeen) > keyedIdleTTL {
				delete(k.buckets, name)
			}
		}
		k.lastSweep = now
	}
	b, ok := k.buckets[key]
	if !ok {
		b = &keyedBucket{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.buckets[key] = b
	}
	b.lastSeen = now
	k.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}
