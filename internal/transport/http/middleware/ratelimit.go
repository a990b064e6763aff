package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"nomina/internal/requestctx"
	"nomina/internal/transport/http/api"
)

const defaultIdleTTL = 5 * time.Minute

type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*rateLimiter)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	disabled  bool
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	keyFn     RateLimitKeyFunc
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	clients   map[string]*client
}

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(rl *rateLimiter) {
		if fn != nil {
			rl.keyFn = fn
		}
	}
}

// WithTrustedProxy keys clients on the first X-Forwarded-For address. Only
// enable it when a proxy in front of the server overwrites that header.
func WithTrustedProxy(trusted bool) RateLimitOption {
	return func(rl *rateLimiter) {
		if trusted {
			rl.keyFn = forwardedIPKey
		}
	}
}

// WithIdleTTL sets how long an untouched, fully refilled limiter is kept.
func WithIdleTTL(ttl time.Duration) RateLimitOption {
	return func(rl *rateLimiter) {
		if ttl > 0 {
			rl.idleTTL = ttl
		}
	}
}

func withClock(now func() time.Time) RateLimitOption {
	return func(rl *rateLimiter) {
		rl.now = now
	}
}

// RateLimit allows perMinute requests per client key with bursts of the same
// size, refilling continuously.
func RateLimit(perMinute int, opts ...RateLimitOption) func(http.Handler) http.Handler {
	return newRateLimiter(perMinute, opts...).middleware
}

func newRateLimiter(perMinute int, opts ...RateLimitOption) *rateLimiter {
	rl := &rateLimiter{
		disabled: perMinute <= 0,
		limit:   rate.Every(time.Minute / time.Duration(max(perMinute, 1))),
		burst:   max(perMinute, 1),
		keyFn:   remoteIPKey,
		idleTTL: defaultIdleTTL,
		now:     time.Now,
		clients: map[string]*client{},
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.disabled || rl.allow(w, r) {
			next.ServeHTTP(w, r)
		}
	})
}

func (rl *rateLimiter) limiter(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}
	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

// sweep drops clients idle for idleTTL whose bucket has refilled, so
// forgetting them changes no decision. Callers hold mu.
func (rl *rateLimiter) sweep(now time.Time) {
	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) >= rl.idleTTL && c.limiter.TokensAt(now) >= float64(rl.burst) {
			delete(rl.clients, key)
		}
	}
	rl.lastSweep = now
}

func (rl *rateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *rateLimiter) allow(w http.ResponseWriter, r *http.Request) bool {
	key := rl.keyFn(r)
	if key == "" {
		key = remoteIPKey(r)
	}
	now := rl.now()
	limiter := rl.limiter(key, now)
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))

	reservation := limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(int(limiter.TokensAt(now)), 0)))
		return true
	}
	reservation.CancelAt(now)

	retryAfter := max(int(delay.Seconds()), 1)
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	requestctx.Logger(r.Context()).Warn("rate limit exceeded",
		zap.String("key", key),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

func remoteIPKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func forwardedIPKey(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if value := strings.TrimSpace(first); value != "" {
			return value
		}
	}
	return remoteIPKey(r)
}
