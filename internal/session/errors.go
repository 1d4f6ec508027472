package session

import (
	"errors"
	"fmt"
)

// Error types for session operations
const (
	ErrorTypeNotFound  = "not_found"
	ErrorTypeForbidden = "forbidden"
)

// Error represents a session resolution failure. NotFound covers sessions
// that are absent or expired; Forbidden covers sessions owned by a different
// user. The distinction is part of the outward contract, so never collapse
// the two.
type Error struct {
	Type      string
	SessionID string
	Message   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("session error [%s] for session %s: %s", e.Type, e.SessionID, e.Message)
}

// NewNotFoundError creates an error for an absent or expired session
func NewNotFoundError(sessionID string) *Error {
	return &Error{
		Type:      ErrorTypeNotFound,
		SessionID: sessionID,
		Message:   "session not found or expired",
	}
}

// NewForbiddenError creates an error for a session owned by another user
func NewForbiddenError(sessionID string) *Error {
	return &Error{
		Type:      ErrorTypeForbidden,
		SessionID: sessionID,
		Message:   "session belongs to a different user",
	}
}

// IsNotFound reports whether err is a session not-found error
func IsNotFound(err error) bool {
	var sessionErr *Error
	return errors.As(err, &sessionErr) && sessionErr.Type == ErrorTypeNotFound
}

// IsForbidden reports whether err is a session ownership error
func IsForbidden(err error) bool {
	var sessionErr *Error
	return errors.As(err, &sessionErr) && sessionErr.Type == ErrorTypeForbidden
}
