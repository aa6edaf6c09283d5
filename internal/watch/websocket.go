// Package watch streams session status transitions over WebSocket so callers
// can follow a launch without polling the REST surface.
package watch

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/solverops/rangectl/pkg/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SessionReader is the read-only view of the session layer the watcher needs.
type SessionReader interface {
	Get(id string) (models.SessionSummary, error)
}

// StatusEvent is one observed transition pushed to the client.
type StatusEvent struct {
	SessionID string               `json:"session_id"`
	Status    models.SessionStatus `json:"status"`
	LastError string               `json:"last_error,omitempty"`
}

// Server upgrades watch requests and relays status changes.
type Server struct {
	sessions SessionReader
	interval time.Duration
}

// NewServer creates a watch server reading from the given session layer.
func NewServer(sessions SessionReader) *Server {
	return &Server{
		sessions: sessions,
		interval: 250 * time.Millisecond,
	}
}

// HandleWatch upgrades the connection and pushes the session's status on
// every observed change. The stream ends after a terminal status or when the
// client disconnects. The watcher only reads store snapshots; it never calls
// back into the session layer.
func (s *Server) HandleWatch(w http.ResponseWriter, r *http.Request, sessionID string) {
	summary, err := s.sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade watch connection: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("Client watching session %s", sessionID)

	// Consume client frames so close messages are noticed promptly.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(statusEvent(summary)); err != nil {
		return
	}
	lastStatus := summary.Status

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			log.Printf("Client stopped watching session %s", sessionID)
			return
		case <-ticker.C:
		}

		summary, err := s.sessions.Get(sessionID)
		if err != nil {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session removed"))
			return
		}

		if summary.Status == lastStatus {
			continue
		}
		lastStatus = summary.Status

		if err := conn.WriteJSON(statusEvent(summary)); err != nil {
			return
		}

		if summary.Status.Terminal() {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session reached terminal state"))
			log.Printf("Watch stream for session %s ended with status %s", sessionID, summary.Status)
			return
		}
	}
}

func statusEvent(summary models.SessionSummary) StatusEvent {
	return StatusEvent{
		SessionID: summary.SessionID,
		Status:    summary.Status,
		LastError: summary.LastError,
	}
}
