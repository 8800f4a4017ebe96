// Package middleware holds chi-compatible HTTP middleware.
package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter.
type RateLimitConfig struct {
	// Requests per second per client
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// Idle clients are forgotten after this long
	TTL time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	cfg       RateLimitConfig
	log       *zap.Logger
	now       func() time.Time
	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

// RateLimit limits requests per client IP. Requests over the limit get 429.
func RateLimit(cfg RateLimitConfig, log *zap.Logger) func(http.Handler) http.Handler {
	if cfg.TTL <= 0 {
		cfg.TTL = 3 * time.Minute
	}
	rl := &rateLimiter{cfg: cfg, log: log, now: time.Now, clients: make(map[string]*client)}
	return rl.middleware
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		limiter := rl.limiter(key)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Burst))
		if !limiter.Allow() {
			rl.log.Warn("rate limit exceeded", zap.String("client", key))
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.retryAfter().Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		next.ServeHTTP(w, r)
	})
}

func (rl *rateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > rl.cfg.TTL {
		for k, c := range rl.clients {
			if now.Sub(c.lastSeen) > rl.cfg.TTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (rl *rateLimiter) retryAfter() time.Duration {
	if rl.cfg.RPS <= 0 {
		return rl.cfg.TTL
	}
	return max(time.Second, time.Duration(float64(time.Second)/rl.cfg.RPS))
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
