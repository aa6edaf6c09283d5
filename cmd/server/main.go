package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/solverops/rangectl/internal/api"
	"github.com/solverops/rangectl/internal/config"
	"github.com/solverops/rangectl/internal/driver"
	"github.com/solverops/rangectl/internal/ratelimit"
	"github.com/solverops/rangectl/internal/session"
	"github.com/solverops/rangectl/internal/watch"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.FromEnv()

	log.Println("Starting GTO Wizard browser controller...")

	// Start the Playwright runtime (installs browsers on first run)
	pw, err := driver.StartPlaywright()
	if err != nil {
		log.Fatalf("Failed to start Playwright: %v", err)
	}
	log.Printf("Playwright runtime ready (browser: %s, headless: %v)", cfg.Browser, cfg.Headless)

	// Session layer: store, lifecycle manager, action dispatcher
	store := session.NewStore()
	sessionMgr := session.NewManager(store, pw, session.Config{
		TargetURL:      cfg.TargetURL,
		Browser:        cfg.Browser,
		Headless:       cfg.Headless,
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		UserAgent:      cfg.UserAgent,
		LaunchTimeout:  cfg.LaunchTimeout,
		MaxSessions:    cfg.MaxSessions,
	})
	dispatcher := session.NewDispatcher(sessionMgr, session.DefaultActionConfig(), cfg.StepTimeout)
	log.Printf("Session manager initialized (max %d concurrent sessions)", cfg.MaxSessions)

	// Status stream over WebSocket
	watchServer := watch.NewServer(sessionMgr)

	// Rate limiter for session-mutating endpoints
	rateLimiter := ratelimit.NewLimiter(cfg.RateLimitPerHour, cfg.RateLimitBurst)
	log.Printf("Rate limiter initialized (%d req/hour per client, burst %d)", cfg.RateLimitPerHour, cfg.RateLimitBurst)

	handler := api.NewHandler(sessionMgr, dispatcher)
	router := handler.SetupRoutes(watchServer, rateLimiter, cfg.RateLimitPerHour)
	log.Println("HTTP routes configured")

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
		// Writes stay open long enough for a full multi-step action.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	sessionMgr.Shutdown()
	if err := pw.Stop(); err != nil {
		log.Printf("Warning: failed to stop Playwright: %v", err)
	}

	log.Println("Server stopped cleanly")
}
