// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter provides rate limiting using a sliding window algorithm.
// It is safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int           // max requests per window
	duration time.Duration // window duration
	cleanup  time.Duration // how often to clean old entries
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a new rate limiter.
// limit: maximum requests allowed per duration
// duration: the time window for counting requests
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		cleanup:  duration * 2,
	}
	go l.cleanupLoop()
	return l
}

// Allow checks if a request from the given key should be allowed.
// Returns true if allowed, false if rate limited.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.windows[key]

	// If no window exists or window expired, create new one
	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{
			count:     1,
			expiresAt: now.Add(l.duration),
		}
		return true
	}

	// Window still active - check limit
	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}

// Remaining returns how many requests are left for this key in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.windows[key]

	if !exists || now.After(w.expiresAt) {
		return l.limit
	}

	remaining := l.limit - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the rate limit for a specific key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// cleanupLoop periodically removes expired entries to prevent memory leaks.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.windows {
			if now.After(w.expiresAt) {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (comma-separated list, first is client)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr (strip port)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return r.RemoteAddr
	}
	return ip
}

// RedeemLimiter provides specialized rate limiting for invite code redemption.
// Invite codes are short and guessable, so it tracks both IP-based and
// per-code limits to prevent:
// - Brute-force guessing from a single client
// - Distributed guessing targeted at one household's code
type RedeemLimiter struct {
	ipLimiter   *Limiter
	codeLimiter *Limiter
}

// NewRedeemLimiter creates a limiter configured for redemption protection.
// Defaults: 10 attempts per IP per minute, 5 attempts per code per 5 minutes.
func NewRedeemLimiter() *RedeemLimiter {
	return &RedeemLimiter{
		ipLimiter:   New(10, time.Minute),
		codeLimiter: New(5, 5*time.Minute),
	}
}

// Check verifies if a redemption attempt should be allowed.
// Returns (allowed, reason) where reason explains why it was blocked.
func (rl *RedeemLimiter) Check(r *http.Request, code string) (bool, string) {
	ip := ClientIP(r)

	if !rl.ipLimiter.Allow(ip) {
		return false, "too many attempts, wait a minute before trying again"
	}

	if code != "" {
		codeKey := strings.ToUpper(strings.TrimSpace(code))
		if !rl.codeLimiter.Allow(codeKey) {
			return false, "too many attempts for this code, wait a few minutes"
		}
	}

	return true, ""
}

// ResetCode clears the rate limit for a code after a successful redemption.
func (rl *RedeemLimiter) ResetCode(code string) {
	if code != "" {
		codeKey := strings.ToUpper(strings.TrimSpace(code))
		rl.codeLimiter.Reset(codeKey)
	}
}
