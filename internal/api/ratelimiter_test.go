package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticLimiter struct {
	allow bool
}

func (s *staticLimiter) Allow() bool {
	return s.allow
}

type hintedLimiter struct {
	staticLimiter
	retry time.Duration
}

func (h *hintedLimiter) RetryAfter() time.Duration {
	return h.retry
}

func TestRateLimitMiddlewareBlocksWhenLimiterDenies(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	middleware := rateLimitMiddleware(&staticLimiter{allow: false}, zap.New(core), http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler should not execute when rate limited")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", nil)
	req = req.WithContext(contextWithRequestID(req.Context(), "req-9"))
	middleware.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", rec.Header().Get("Retry-After"))
	}
	resp := decodeError(t, rec)
	if !strings.Contains(resp.Details, "retry in 1s") || resp.Suggestion == "" {
		t.Fatalf("unexpected error body %+v", resp)
	}

	entries := logs.FilterMessage("plan request throttled").All()
	if len(entries) != 1 {
		t.Fatalf("expected one throttle log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-9" || fields["path"] != "/api/plan" {
		t.Fatalf("unexpected log fields %v", fields)
	}
}

func TestRateLimitMiddlewareRetryAfterFromLimiter(t *testing.T) {
	limiter := &hintedLimiter{retry: 2500 * time.Millisecond}
	middleware := rateLimitMiddleware(limiter, nil, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))

	rec := httptest.NewRecorder()
	middleware.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/render", nil))

	if rec.Header().Get("Retry-After") != "3" {
		t.Fatalf("expected Retry-After rounded up to 3, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimitMiddlewareExemptsHealth(t *testing.T) {
	var called bool
	middleware := rateLimitMiddleware(&staticLimiter{allow: false}, nil, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	middleware.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if !called {
		t.Fatalf("expected health check to bypass the limiter")
	}
}

func TestRateLimitMiddlewarePassesWhenLimiterAllows(t *testing.T) {
	var called bool
	middleware := rateLimitMiddleware(&staticLimiter{allow: true}, nil, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	middleware.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to execute when limiter allows")
	}
}

func TestRateLimitMiddlewareNilLimiter(t *testing.T) {
	var called bool
	middleware := rateLimitMiddleware(nil, nil, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	middleware.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Fatalf("expected nil limiter to pass every request")
	}
}

func TestNewTokenBucketLimiterUsesDefaults(t *testing.T) {
	limiter := newTokenBucketLimiter(0, 0)
	if limiter == nil {
		t.Fatalf("expected limiter instance")
	}
	if !limiter.Allow() {
		t.Fatalf("expected first request to be allowed")
	}
}

func TestTokenBucketExhaustsBurst(t *testing.T) {
	limiter := newTokenBucketLimiter(0.001, 2)
	if !limiter.Allow() || !limiter.Allow() {
		t.Fatalf("expected burst of two to be allowed")
	}
	if limiter.Allow() {
		t.Fatalf("expected third request to be denied")
	}
}

func TestTokenBucketRetryAfterFollowsRate(t *testing.T) {
	limiter := newTokenBucketLimiter(0.25, 1)
	if got := retryAfterSeconds(limiter); got != 4 {
		t.Fatalf("expected 4s retry at 0.25 rps, got %d", got)
	}
	if got := retryAfterSeconds(newTokenBucketLimiter(50, 1)); got != 1 {
		t.Fatalf("expected retry floor of 1s, got %d", got)
	}
}
