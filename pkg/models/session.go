package models

import "time"

// SessionStatus represents the current state of a browser session
type SessionStatus string

const (
	StatusLaunching SessionStatus = "launching"
	StatusActive    SessionStatus = "active"
	StatusError     SessionStatus = "error"
	StatusClosed    SessionStatus = "closed"
)

// Terminal reports whether the status admits no further transitions.
func (s SessionStatus) Terminal() bool {
	return s == StatusError || s == StatusClosed
}

// SessionSummary is the caller-facing projection of a session record.
// Browser handles never appear on the wire.
type SessionSummary struct {
	SessionID string        `json:"session_id"`
	Status    SessionStatus `json:"status"`
	URL       string        `json:"url"`
	CreatedAt time.Time     `json:"created_at"`
	LastError string        `json:"last_error,omitempty"`
}

// SessionListResponse is the payload for GET /sessions
type SessionListResponse struct {
	Sessions []SessionSummary `json:"sessions"`
	Total    int              `json:"total"`
}
