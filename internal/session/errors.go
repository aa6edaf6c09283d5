package session

import "errors"

// Component-boundary errors. Handlers map these onto HTTP status codes with
// errors.Is; everything else surfaces as a driver failure.
var (
	// ErrNotFound reports an unknown session identifier.
	ErrNotFound = errors.New("session not found")

	// ErrNotUsable reports a session that exists but cannot accept actions
	// (still launching, errored, or closed).
	ErrNotUsable = errors.New("session is not usable")

	// ErrInvalidParameter reports an unrecognized action parameter value.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrElementNotFound reports that an expected UI element never became
	// visible or clickable.
	ErrElementNotFound = errors.New("element not found")

	// ErrTooManySessions reports that the live-session cap is reached.
	ErrTooManySessions = errors.New("maximum number of concurrent sessions reached")
)
