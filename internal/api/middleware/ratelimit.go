package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a fixed-window, per-client request limiter kept in
// process memory. It fronts the whole site to keep the signup and post
// forms from being hammered; a multi-instance deployment would need a
// shared store instead.
type RateLimiter struct {
	clients  map[string]*clientWindow
	requests int
	window   time.Duration
	mu       sync.Mutex
}

type clientWindow struct {
	resetAt time.Time
	count   int
}

// NewRateLimiter creates a limiter allowing requests per window per client
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientWindow),
		requests: requests,
		window:   window,
	}

	go rl.cleanup()

	return rl
}

// Middleware returns the rate limiting http middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()

	win, ok := rl.clients[client]
	if !ok || now.After(win.resetAt) {
		rl.clients[client] = &clientWindow{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	if win.count < rl.requests {
		win.count++
		return true
	}

	return false
}

// cleanup drops expired windows so the map doesn't grow with one entry
// per client IP ever seen.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now().UTC()
		for client, win := range rl.clients {
			if now.After(win.resetAt) {
				delete(rl.clients, client)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP extracts the client identifier, preferring proxy headers
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
