package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/solverops/rangectl/internal/driver"
	"github.com/solverops/rangectl/pkg/models"
)

// Config holds the launch parameters shared by every session.
type Config struct {
	// TargetURL is the page every new session navigates to.
	TargetURL string

	// Browser selects the engine, Headless its display mode.
	Browser  string
	Headless bool

	// Viewport and user agent applied to each browser context.
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string

	// LaunchTimeout bounds launch plus initial navigation.
	LaunchTimeout time.Duration

	// MaxSessions caps concurrently live (launching or active) sessions.
	MaxSessions int64
}

// Manager owns session lifecycles: it creates records, runs the asynchronous
// launch, and applies every status transition in a totally ordered way per
// session.
type Manager struct {
	store  *Store
	driver driver.Driver
	cfg    Config
	slots  *semaphore.Weighted
}

// NewManager creates a session manager backed by the given store and driver.
func NewManager(store *Store, drv driver.Driver, cfg Config) *Manager {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 10
	}
	if cfg.LaunchTimeout <= 0 {
		cfg.LaunchTimeout = 60 * time.Second
	}
	return &Manager{
		store:  store,
		driver: drv,
		cfg:    cfg,
		slots:  semaphore.NewWeighted(cfg.MaxSessions),
	}
}

// Create registers a new session in status launching and returns its id
// immediately. The browser launch and navigation proceed in the background;
// the record settles to active or error when they finish.
func (m *Manager) Create() (string, error) {
	if !m.slots.TryAcquire(1) {
		return "", ErrTooManySessions
	}

	id := uuid.New().String()
	launchCtx, cancel := context.WithTimeout(context.Background(), m.cfg.LaunchTimeout)

	rec := &Record{
		ID:           id,
		Status:       models.StatusLaunching,
		TargetURL:    m.cfg.TargetURL,
		CreatedAt:    time.Now(),
		cancelLaunch: cancel,
	}

	if err := m.store.Insert(rec); err != nil {
		cancel()
		m.slots.Release(1)
		return "", fmt.Errorf("failed to register session: %w", err)
	}

	log.Printf("Created new browser session: %s", id)
	go m.launch(launchCtx, rec, cancel)

	return id, nil
}

// launch acquires a browser page, navigates it to the target URL, and
// settles the record. No locks are held while the driver is working.
func (m *Manager) launch(ctx context.Context, rec *Record, cancel context.CancelFunc) {
	defer cancel()

	page, err := m.driver.Launch(ctx, driver.Options{
		Browser:        m.cfg.Browser,
		Headless:       m.cfg.Headless,
		ViewportWidth:  m.cfg.ViewportWidth,
		ViewportHeight: m.cfg.ViewportHeight,
		UserAgent:      m.cfg.UserAgent,
	})
	if err == nil {
		timeout := m.cfg.LaunchTimeout
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if err = page.Navigate(rec.TargetURL, timeout); err != nil {
			err = fmt.Errorf("navigation to target URL failed: %w", err)
		}
	}

	m.settleLaunch(rec, page, err)
}

// settleLaunch applies the launch outcome through the store. A close that
// won the race leaves the record in a terminal state; the late result is
// discarded and its page released rather than overwriting the close.
func (m *Manager) settleLaunch(rec *Record, page driver.Page, launchErr error) {
	rec.opMu.Lock()
	defer rec.opMu.Unlock()

	var stale bool
	err := m.store.Update(rec.ID, func(r *Record) {
		if r.Status != models.StatusLaunching {
			stale = true
			return
		}
		r.cancelLaunch = nil
		if launchErr != nil {
			r.Status = models.StatusError
			r.LastError = launchErr.Error()
			return
		}
		r.Status = models.StatusActive
		r.Page = page
	})
	if err != nil {
		stale = true
	}

	if stale {
		if page != nil {
			page.Close()
		}
		log.Printf("Session %s settled before launch completed, discarding launch result", rec.ID)
		return
	}

	if launchErr != nil {
		if page != nil {
			page.Close()
		}
		m.slots.Release(1)
		log.Printf("Error launching browser session %s: %v", rec.ID, launchErr)
		return
	}

	log.Printf("Browser session %s is now active", rec.ID)
}

// Get returns a snapshot of the session, or ErrNotFound.
func (m *Manager) Get(id string) (models.SessionSummary, error) {
	return m.store.Get(id)
}

// List returns snapshots of every session the process has created.
func (m *Manager) List() []models.SessionSummary {
	return m.store.List()
}

// Close releases the session's browser resources and marks it closed. The
// record stays queryable. Closing a session that already reached a terminal
// state is a no-op. A close during launch cancels the launch; the in-flight
// result is discarded when it arrives.
func (m *Manager) Close(id string) error {
	rec, ok := m.store.record(id)
	if !ok {
		return ErrNotFound
	}

	rec.opMu.Lock()
	defer rec.opMu.Unlock()

	var (
		was  models.SessionStatus
		page driver.Page
	)
	if err := m.store.Update(id, func(r *Record) {
		was = r.Status
		switch r.Status {
		case models.StatusClosed, models.StatusError:
			return

		case models.StatusLaunching:
			if r.cancelLaunch != nil {
				r.cancelLaunch()
				r.cancelLaunch = nil
			}
			r.Status = models.StatusClosed

		default: // active
			page = r.Page
			r.Page = nil
			r.Status = models.StatusClosed
		}
	}); err != nil {
		return err
	}

	switch was {
	case models.StatusClosed, models.StatusError:
		return nil

	case models.StatusLaunching:
		m.slots.Release(1)
		log.Printf("Closed browser session %s while launching", id)
		return nil

	default:
		if page != nil {
			if err := page.Close(); err != nil {
				log.Printf("Warning: failed to close browser for session %s: %v", id, err)
			}
		}
		m.slots.Release(1)
		log.Printf("Closed browser session: %s", id)
		return nil
	}
}

// fail transitions an active session to error, releasing its page. Used by
// the dispatcher when an action fails terminally.
func (m *Manager) fail(rec *Record, cause error) {
	var page driver.Page
	moved := false
	if err := m.store.Update(rec.ID, func(r *Record) {
		if r.Status != models.StatusActive {
			return
		}
		page = r.Page
		r.Page = nil
		r.Status = models.StatusError
		r.LastError = cause.Error()
		moved = true
	}); err != nil || !moved {
		return
	}

	if page != nil {
		if err := page.Close(); err != nil {
			log.Printf("Warning: failed to close browser for session %s: %v", rec.ID, err)
		}
	}
	m.slots.Release(1)
	log.Printf("Session %s moved to error state: %v", rec.ID, cause)
}

// Shutdown closes every live session. Called on process exit.
func (m *Manager) Shutdown() {
	for _, summary := range m.store.List() {
		if summary.Status.Terminal() {
			continue
		}
		if err := m.Close(summary.SessionID); err != nil {
			log.Printf("Warning: failed to close session %s during shutdown: %v", summary.SessionID, err)
		}
	}
}
