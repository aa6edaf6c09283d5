package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/solverops/rangectl/internal/ratelimit"
	"github.com/solverops/rangectl/internal/watch"
)

// SetupRoutes configures all HTTP routes
func (h *Handler) SetupRoutes(watchServer *watch.Server, rateLimiter *ratelimit.Limiter, requestsPerHour int) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Root).Methods("GET")

	// Session-mutating endpoints (rate limited)
	rateLimited := r.PathPrefix("").Subrouter()
	rateLimited.Use(RateLimitMiddleware(rateLimiter, requestsPerHour))
	rateLimited.HandleFunc("/create", h.CreateSession).Methods("POST")
	rateLimited.HandleFunc("/get-range", h.GetRange).Methods("POST")

	// Inspection endpoints (not rate limited - frequent polling)
	r.HandleFunc("/sessions", h.ListSessions).Methods("GET")
	r.HandleFunc("/sessions/{id}", h.GetSession).Methods("GET")
	r.HandleFunc("/sessions/{id}", h.DeleteSession).Methods("DELETE")

	// Status stream
	r.HandleFunc("/sessions/{id}/watch", func(w http.ResponseWriter, req *http.Request) {
		watchServer.HandleWatch(w, req, mux.Vars(req)["id"])
	}).Methods("GET")

	r.Use(corsMiddleware)

	return r
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
