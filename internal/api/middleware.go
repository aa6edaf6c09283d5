package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/solverops/rangectl/internal/ratelimit"
)

// RateLimitMiddleware creates a middleware that enforces per-client rate limits
func RateLimitMiddleware(limiter *ratelimit.Limiter, requestsPerHour int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddress(r)

			if !limiter.Allow(client) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(requestsPerHour))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.WriteHeader(http.StatusTooManyRequests)

				json.NewEncoder(w).Encode(map[string]string{
					"error": "Rate limit exceeded. Try again later.",
				})
				return
			}

			tokens := limiter.Tokens(client)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(requestsPerHour))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(tokens)))

			next.ServeHTTP(w, r)
		})
	}
}

// clientAddress identifies the caller for rate limiting purposes. A proxy's
// forwarded header wins over the socket address.
func clientAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
