package auth

import (
	"sync"
	"time"
)

// sweepInterval is how often AllowWithDefault drops refilled buckets.
const sweepInterval = time.Minute

// RateLimiter implements a token bucket per identity (key name or client IP).
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	now       func() time.Time
	lastSweep time.Time
}

type tokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	// transient buckets are created on first sight and evicted once full
	transient bool
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*tokenBucket),
		now:     time.Now,
	}
}

// SetLimit (re)configures id to rpm requests per minute with a full bucket.
// Burst is about ten seconds worth of requests, never less than 10.
func (r *RateLimiter) SetLimit(id string, rpm int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buckets[id] = r.newBucket(rpm)
}

func (r *RateLimiter) newBucket(rpm int) *tokenBucket {
	maxTokens := float64(rpm) / 6
	if maxTokens < 10 {
		maxTokens = 10
	}
	return &tokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: float64(rpm) / 60.0,
		lastRefill: r.now(),
	}
}

// Allow consumes a token for id. Identities without a limit are always allowed.
func (r *RateLimiter) Allow(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.buckets[id]
	if !exists {
		return true
	}
	return r.take(bucket)
}

// AllowWithDefault is Allow for identities that are limited on first sight,
// such as anonymous client IPs.
func (r *RateLimiter) AllowWithDefault(id string, rpm int) bool {
	if rpm <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()

	bucket, exists := r.buckets[id]
	if !exists {
		bucket = r.newBucket(rpm)
		bucket.transient = true
		r.buckets[id] = bucket
	}
	return r.take(bucket)
}

// sweepLocked removes transient buckets that have refilled completely. A
// full bucket behaves exactly like a fresh one, so eviction never changes
// a decision.
func (r *RateLimiter) sweepLocked() {
	now := r.now()
	if now.Sub(r.lastSweep) < sweepInterval {
		return
	}
	r.lastSweep = now

	for id, b := range r.buckets {
		if !b.transient {
			continue
		}
		if b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate >= b.maxTokens {
			delete(r.buckets, id)
		}
	}
}

// Len returns the number of tracked identities.
func (r *RateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}

func (r *RateLimiter) take(bucket *tokenBucket) bool {
	now := r.now()
	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens += elapsed * bucket.refillRate
	if bucket.tokens > bucket.maxTokens {
		bucket.tokens = bucket.maxTokens
	}
	bucket.lastRefill = now

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true
	}
	return false
}

// Remaining returns the current token count for id, or -1 when unlimited.
func (r *RateLimiter) Remaining(id string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.buckets[id]
	if !exists {
		return -1
	}
	return bucket.tokens
}
