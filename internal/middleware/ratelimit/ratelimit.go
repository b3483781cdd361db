// Package ratelimit throttles clients per IP with a fixed one-minute
// window.
package ratelimit

import (
	"net/http"
	"sync"
	"time"
)

type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 120,
		CleanupInterval:   5 * time.Minute,
	}
}

type Limiter struct {
	mu      sync.Mutex
	clients map[string]*window

	requestsPerMinute int
	stop              chan struct{}
	stopOnce          sync.Once
}

type window struct {
	last  time.Time
	count int
}

func NewLimiter(cfg Config) *Limiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultConfig().RequestsPerMinute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig().CleanupInterval
	}

	l := &Limiter{
		clients:           make(map[string]*window),
		requestsPerMinute: cfg.RequestsPerMinute,
		stop:              make(chan struct{}),
	}
	go l.cleanupLoop(cfg.CleanupInterval)
	return l
}

// Allow reports whether another request from clientIP fits the window.
func (l *Limiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.clients[clientIP]
	if !ok || now.Sub(w.last) > time.Minute {
		l.clients[clientIP] = &window{last: now, count: 1}
		return true
	}

	w.count++
	w.last = now
	return w.count <= l.requestsPerMinute
}

// Middleware rejects over-limit requests with 429.
func (l *Limiter) Middleware(clientIP func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.dropStale()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) dropStale() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, w := range l.clients {
		if w.last.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// Shutdown stops the cleanup goroutine.
func (l *Limiter) Shutdown() {
	l.stopOnce.Do(func() { close(l.stop) })
}
