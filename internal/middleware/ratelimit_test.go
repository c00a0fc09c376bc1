package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, rate int, window time.Duration, burst int) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(RateLimitConfig{Rate: rate, Window: window, Burst: burst})
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	rl := newTestLimiter(t, 5, time.Minute, 0)

	for i := 0; i < 5; i++ {
		allowed, _, _ := rl.Allow("client-a")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_RejectOverLimit(t *testing.T) {
	rl := newTestLimiter(t, 3, time.Minute, 0)

	for i := 0; i < 3; i++ {
		rl.Allow("client-a")
	}

	allowed, remaining, _ := rl.Allow("client-a")
	if allowed {
		t.Fatal("expected request over limit to be rejected")
	}
	if remaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", remaining)
	}
}

func TestRateLimiter_IndependentKeys(t *testing.T) {
	rl := newTestLimiter(t, 1, time.Minute, 0)

	rl.Allow("client-a")
	if allowed, _, _ := rl.Allow("client-a"); allowed {
		t.Fatal("client-a should be exhausted")
	}
	if allowed, _, _ := rl.Allow("client-b"); !allowed {
		t.Fatal("client-b should have its own bucket")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := newTestLimiter(t, 10, 100*time.Millisecond, 0)

	for i := 0; i < 10; i++ {
		rl.Allow("client-a")
	}
	if allowed, _, _ := rl.Allow("client-a"); allowed {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(120 * time.Millisecond)

	if allowed, _, _ := rl.Allow("client-a"); !allowed {
		t.Fatal("bucket should have refilled after the window")
	}
}

func TestRateLimit_Headers(t *testing.T) {
	rl := newTestLimiter(t, 2, time.Minute, 0)
	h := RateLimit(rl)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "2" {
		t.Fatalf("expected limit header 2, got %q", got)
	}
	if rec.Header().Get("X-RateLimit-Remaining") == "" {
		t.Fatal("expected remaining header")
	}
}

func TestRateLimit_Rejection(t *testing.T) {
	rl := newTestLimiter(t, 1, time.Minute, 0)
	h := RateLimit(rl)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request should succeed, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if got := rec.Header().Get("Content-Type"); got != "application/problem+json" {
		t.Fatalf("expected problem+json, got %q", got)
	}
}
