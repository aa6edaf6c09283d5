package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/solverops/rangectl/internal/driver"
	"github.com/solverops/rangectl/pkg/models"
)

// Record is the single source of truth for one session. Two locks with
// distinct scopes keep sessions independent of each other:
//
//   - opMu serializes whole operations (launch settlement, action execution,
//     close) so their transitions never interleave within a session.
//   - mu guards field access and is only ever held briefly, so snapshot reads
//     and listings never wait behind a slow browser interaction.
type Record struct {
	opMu sync.Mutex
	mu   sync.Mutex

	ID        string
	Status    models.SessionStatus
	TargetURL string
	CreatedAt time.Time
	LastError string

	// Page is the live browser handle, present only while the session is
	// active. The record is its sole owner.
	Page driver.Page

	// cancelLaunch aborts an in-flight launch; nil once the launch settles.
	cancelLaunch context.CancelFunc
}

// Snapshot returns the caller-facing projection of the record.
func (r *Record) Snapshot() models.SessionSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	return models.SessionSummary{
		SessionID: r.ID,
		Status:    r.Status,
		URL:       r.TargetURL,
		CreatedAt: r.CreatedAt,
		LastError: r.LastError,
	}
}

// Store holds every session record, keyed by identifier. The store's own
// lock only guards the map; per-session consistency is the records' concern.
// Records are never evicted automatically, so closed and errored sessions
// stay inspectable until the process exits.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
	}
}

// Insert adds a new record. Identifiers are generated, never reused, so a
// collision indicates a broken generator and is reported as an error.
func (s *Store) Insert(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("duplicate session id %s", rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

// Get returns a snapshot of the record, or ErrNotFound.
func (s *Store) Get(id string) (models.SessionSummary, error) {
	rec, ok := s.record(id)
	if !ok {
		return models.SessionSummary{}, ErrNotFound
	}
	return rec.Snapshot(), nil
}

// Update applies a mutator to the record atomically with respect to other
// field access on the same session.
func (s *Store) Update(id string, fn func(*Record)) error {
	rec, ok := s.record(id)
	if !ok {
		return ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	fn(rec)
	return nil
}

// List returns snapshots of every record, handles excluded.
func (s *Store) List() []models.SessionSummary {
	s.mu.RLock()
	records := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	summaries := make([]models.SessionSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, rec.Snapshot())
	}
	return summaries
}

// Remove evicts a record. The base deployment keeps closed sessions visible
// for inspection; this exists for callers that want explicit eviction.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// record returns the live record for intra-package operations.
func (s *Store) record(id string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}
