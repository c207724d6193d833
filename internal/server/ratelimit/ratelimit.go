// Package ratelimit provides per-client token bucket rate limiting for
// the portal API. Endpoints are grouped into tiers: the routes that call
// the generative model get the tightest budgets, credential endpoints
// get abuse-resistant ones, and everything else falls back to a default.
package ratelimit

import (
	"sync"
	"time"
)

// Tier labels for the endpoint classes. The active tier is reported in
// rate limit responses and logs.
const (
	TierModel   = "model" // routes that invoke the generative model
	TierAuth    = "auth"  // credential endpoints
	TierWrite   = "write" // job, profile and messaging writes
	TierDefault = "default"
	TierHealth  = "health" // liveness checks, never limited
)

// idleBucketTTL is how long an untouched bucket survives before the
// sweeper drops it.
const idleBucketTTL = time.Hour

// Info reports the limiter's decision for one request.
type Info struct {
	Allowed    bool
	Tier       string
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// bucket is a token bucket refilled continuously at refillRate tokens
// per second. Access is serialized by the owning Limiter's mutex.
type bucket struct {
	tokens     float64
	capacity   float64
	refillRate float64
	lastRefill time.Time
	lastAccess time.Time
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
}

// take consumes one token if available and reports the remaining budget,
// or the wait until the next token when the bucket is empty.
func (b *bucket) take(now time.Time) (ok bool, remaining int, retryAfter time.Duration) {
	b.refill(now)
	b.lastAccess = now
	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	if b.refillRate > 0 {
		retryAfter = time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
	}
	return false, 0, retryAfter
}

// Limiter tracks one token bucket per client and endpoint rule. Paths
// covered by the same prefix rule share a bucket, so a client hammering
// /api/jobs/{id} cannot reset its budget by varying the ID.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewLimiter builds a Limiter and starts its idle-bucket sweeper. A nil
// config enables the limiter with only the built-in default budget.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		stopCh:  make(chan struct{}),
	}

	if config.Enabled {
		interval := config.CleanupInterval
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go l.sweep(interval)
	}
	return l
}

// Allow decides whether clientID may call method path now and returns
// the decision details for response headers and logging.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true, Tier: TierDefault}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{
			Tier:      TierDefault,
			ResetTime: time.Now().Add(24 * time.Hour),
		}
	}

	rule := l.config.match(path, method)
	if rule.Limit <= 0 {
		return true, Info{Allowed: true, Tier: rule.Tier}
	}
	window := rule.Window
	if window <= 0 {
		window = time.Minute
	}

	now := time.Now()
	key := clientID + "|" + rule.Method + " " + rule.Path

	l.mu.Lock()
	b := l.buckets[key]
	if b == nil {
		capacity := float64(rule.Burst)
		if capacity <= 0 {
			capacity = float64(rule.Limit)
		}
		b = &bucket{
			tokens:     capacity,
			capacity:   capacity,
			refillRate: float64(rule.Limit) / window.Seconds(),
			lastRefill: now,
		}
		l.buckets[key] = b
	}
	ok, remaining, retryAfter := b.take(now)
	l.mu.Unlock()

	return ok, Info{
		Allowed:    ok,
		Tier:       rule.Tier,
		Limit:      rule.Limit,
		Remaining:  remaining,
		ResetTime:  now.Add(window),
		RetryAfter: retryAfter,
	}
}

// sweep periodically drops buckets that have been idle past the TTL.
func (l *Limiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-idleBucketTTL)
			l.mu.Lock()
			for key, b := range l.buckets {
				if b.lastAccess.Before(cutoff) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		case <-l.stopCh:
			return
		}
	}
}

// Stop terminates the sweeper goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}
