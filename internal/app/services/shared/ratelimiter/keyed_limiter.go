package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter keeps one token bucket per key. Entries idle longer than the
// eviction age are dropped so the map does not grow without bound.
type KeyedLimiter struct {
	limiters map[string]*entry
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	maxAge   time.Duration
	lastScan time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewKeyedLimiter(eventsPerMinute, burst int) *KeyedLimiter {
	if eventsPerMinute <= 0 {
		eventsPerMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &KeyedLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Every(time.Minute / time.Duration(eventsPerMinute)),
		burst:    burst,
		maxAge:   time.Hour,
		lastScan: time.Now(),
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := time.Now()
	if now.Sub(k.lastScan) > k.maxAge {
		for key, e := range k.limiters {
			if now.Sub(e.lastSeen) > k.maxAge {
				delete(k.limiters, key)
			}
		}
		k.lastScan = now
	}

	e, exists := k.limiters[key]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.limiters[key] = e
	}
	e.lastSeen = now

	return e.limiter.Allow()
}
