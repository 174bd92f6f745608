package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type rateLimiter interface {
	Allow() bool
}

// retryHinter is implemented by limiters that know when the next token is due.
type retryHinter interface {
	RetryAfter() time.Duration
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *limiterAdapter) Allow() bool {
	if l == nil || l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}

// RetryAfter is the refill interval of one token.
func (l *limiterAdapter) RetryAfter() time.Duration {
	if l == nil || l.limiter == nil || l.limiter.Limit() <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / float64(l.limiter.Limit()))
}

// retryAfterSeconds rounds the limiter's hint up to whole seconds, minimum 1.
func retryAfterSeconds(limiter rateLimiter) int {
	h, ok := limiter.(retryHinter)
	if !ok {
		return 1
	}
	secs := int(math.Ceil(h.RetryAfter().Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// rateLimitMiddleware throttles plan and render traffic. Health checks
// bypass the limiter.
func rateLimitMiddleware(limiter rateLimiter, logger *zap.Logger, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" || limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}

		retry := retryAfterSeconds(limiter)
		logger.Warn("plan request throttled",
			zap.String("request_id", requestIDFromContext(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("retry_after_s", retry),
		)
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		writeError(w, http.StatusTooManyRequests, "Too many requests",
			fmt.Sprintf("label sheet planning is rate limited; retry in %ds", retry),
			"send all identifiers in one plan or render request instead of one per label")
	})
}
