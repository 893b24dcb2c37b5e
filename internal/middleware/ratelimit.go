package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig describes a fixed-window limit.
type RateLimitConfig struct {
	Window  time.Duration
	Max     int
	Message string
}

// AuthRateLimit guards the credential endpoints against brute force.
var AuthRateLimit = RateLimitConfig{
	Window:  15 * time.Minute,
	Max:     5,
	Message: "Too many login attempts, please try again later",
}

// APIRateLimit is the general limit for authenticated API traffic.
var APIRateLimit = RateLimitConfig{
	Window:  time.Minute,
	Max:     60,
	Message: "Too many API requests, please slow down",
}

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// RateLimiter is a per-fingerprint fixed-window counter. State is
// process-local and lost on restart; a multi-instance deployment needs a
// shared-state limiter instead. Expired entries are purged lazily on each
// check, so no background sweep runs.
type RateLimiter struct {
	config RateLimitConfig

	mu      sync.Mutex
	entries map[string]*rateLimitEntry

	now func() time.Time
}

// NewRateLimiter creates a limiter with the given config.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		config:  config,
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Check records a request for the fingerprint and reports whether it is
// within the limit. The first request for a key, or the first after its
// window has elapsed, starts a fresh window with count 1.
func (l *RateLimiter) Check(fingerprint string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	for key, entry := range l.entries {
		if now.After(entry.resetTime) {
			delete(l.entries, key)
		}
	}

	entry, ok := l.entries[fingerprint]
	if !ok || now.After(entry.resetTime) {
		l.entries[fingerprint] = &rateLimitEntry{count: 1, resetTime: now.Add(l.config.Window)}
		return true
	}

	if entry.count >= l.config.Max {
		return false
	}

	entry.count++
	return true
}

// Middleware returns a Gin handler that rejects over-limit requests with 429.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Check(clientFingerprint(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": l.config.Message})
			return
		}
		c.Next()
	}
}

// clientFingerprint identifies a client by forwarded IP plus a truncated
// user-agent. Coarse on purpose: colliding fingerprints only make the limit
// stricter, never looser per real client.
func clientFingerprint(c *gin.Context) string {
	ip := c.ClientIP()
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	userAgent := c.GetHeader("User-Agent")
	if len(userAgent) > 50 {
		userAgent = userAgent[:50]
	}

	return ip + "-" + userAgent
}
