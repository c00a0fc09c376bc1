package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/meridian/catalog/api/internal/model"
)

// RateLimiter implements a token bucket rate limiter keyed by client
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     int           // tokens per window
	window   time.Duration // refill window
	burst    int           // max burst size
	stopChan chan struct{}
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimitConfig holds rate limiter settings
type RateLimitConfig struct {
	Rate   int
	Window time.Duration
	Burst  int
}

// NewRateLimiter creates a rate limiter with the given rate per window
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     cfg.Rate,
		window:   cfg.Window,
		burst:    cfg.Burst,
		stopChan: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// cleanupLoop removes stale buckets periodically
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStale()
		case <-rl.stopChan:
			return
		}
	}
}

func (rl *RateLimiter) cleanupStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-3 * rl.window)
	for key, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// Stop terminates the cleanup goroutine
func (rl *RateLimiter) Stop() {
	close(rl.stopChan)
}

// Allow checks whether the client identified by key may proceed.
// It returns the remaining tokens and the time at which the bucket
// fully refills.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{
			tokens:   float64(rl.rate+rl.burst) - 1,
			lastSeen: now,
		}
		rl.buckets[key] = b
		return true, int(b.tokens), now.Add(rl.window)
	}

	// Refill tokens based on elapsed time
	elapsed := now.Sub(b.lastSeen)
	refill := float64(rl.rate) * (elapsed.Seconds() / rl.window.Seconds())
	b.tokens += refill
	if max := float64(rl.rate + rl.burst); b.tokens > max {
		b.tokens = max
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false, 0, now.Add(rl.window)
	}

	b.tokens--
	return true, int(b.tokens), now.Add(rl.window)
}

// RateLimit returns a middleware that enforces the rate limiter,
// keyed by the client's remote address.
func RateLimit(rl *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr

			allowed, remaining, reset := rl.Allow(key)

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.rate))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset.Unix()))

			if !allowed {
				retryAfter := int(time.Until(reset).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))

				problem := model.NewRateLimitError(retryAfter)
				problem.WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
