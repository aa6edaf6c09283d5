package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/solverops/rangectl/internal/session"
	"github.com/solverops/rangectl/pkg/models"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	sessions   *session.Manager
	dispatcher *session.Dispatcher
}

// NewHandler creates a new HTTP handler
func NewHandler(sessions *session.Manager, dispatcher *session.Dispatcher) *Handler {
	return &Handler{
		sessions:   sessions,
		dispatcher: dispatcher,
	}
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "GTO Wizard Browser Controller API",
	})
}

// CreateSession handles POST /create
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Action != "" && req.Action != "create" {
		writeError(w, http.StatusBadRequest, "Action must be 'create'")
		return
	}

	id, err := h.sessions.Create()
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create browser session: "+err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, models.CreateResponse{
		SessionID: id,
		Status:    models.StatusLaunching,
		Message:   "Browser session created successfully. Browser is launching in background.",
	})
}

// GetRange handles POST /get-range
func (h *Handler) GetRange(w http.ResponseWriter, r *http.Request) {
	var req models.GetRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Action != "" && req.Action != "get-range" {
		writeError(w, http.StatusBadRequest, "Action must be 'get-range'")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	result, err := h.dispatcher.GetRange(req)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			writeError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, session.ErrInvalidParameter):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, session.ErrNotUsable):
			writeError(w, http.StatusConflict, err.Error())
		default:
			// Element or driver failure: the session has transitioned to
			// error and is no longer usable.
			writeJSON(w, http.StatusBadGateway, models.GetRangeResponse{
				SessionID: req.SessionID,
				Status:    "error",
				Message:   "Failed to perform get-range action: " + err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, models.GetRangeResponse{
		SessionID:       req.SessionID,
		Status:          "success",
		Message:         result.Message,
		ActionPerformed: result.ActionPerformed,
	})
}

// ListSessions handles GET /sessions
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessions.List()
	if sessions == nil {
		sessions = []models.SessionSummary{}
	}

	writeJSON(w, http.StatusOK, models.SessionListResponse{
		Sessions: sessions,
		Total:    len(sessions),
	})
}

// GetSession handles GET /sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	summary, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// DeleteSession handles DELETE /sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.sessions.Close(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to close session: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Session " + id + " closed successfully",
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
