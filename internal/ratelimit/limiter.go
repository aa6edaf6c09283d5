package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter manages per-client token buckets. Clients are keyed by caller
// address; a bucket is created on first sight and kept for the process
// lifetime.
type Limiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// NewLimiter creates a limiter allowing requestsPerHour sustained requests
// per client with the given burst size.
func NewLimiter(requestsPerHour int, burst int) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(requestsPerHour) / 3600.0),
		burst:    burst,
	}
}

// GetLimiter returns the bucket for a client, creating it if needed.
func (l *Limiter) GetLimiter(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[client]
	if !exists {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[client] = limiter
	}
	return limiter
}

// Allow reports whether the client may make a request now.
func (l *Limiter) Allow(client string) bool {
	return l.GetLimiter(client).Allow()
}

// Tokens returns the client's currently available tokens.
func (l *Limiter) Tokens(client string) float64 {
	return l.GetLimiter(client).Tokens()
}
