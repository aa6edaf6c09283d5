package models

// CreateRequest is the payload for POST /create
type CreateRequest struct {
	Action string `json:"action"`
}

// CreateResponse is the payload returned by POST /create
type CreateResponse struct {
	SessionID string        `json:"session_id"`
	Status    SessionStatus `json:"status"`
	Message   string        `json:"message"`
}

// GetRangeRequest is the payload for POST /get-range. All filter fields are
// optional; an empty string means "do not touch that filter group".
type GetRangeRequest struct {
	Action         string `json:"action"`
	SessionID      string `json:"session_id"`
	Solutions      string `json:"solutions,omitempty"`
	CashType       string `json:"cash_type,omitempty"`
	CashPlayers    string `json:"cash_players,omitempty"`
	AvailableSpots string `json:"available_spots,omitempty"`
	CashStacks     string `json:"cash_stacks,omitempty"`
}

// GetRangeResponse is the payload returned by POST /get-range
type GetRangeResponse struct {
	SessionID       string `json:"session_id"`
	Status          string `json:"status"`
	Message         string `json:"message"`
	ActionPerformed string `json:"action_performed"`
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error string `json:"error"`
}
