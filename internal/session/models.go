package session

import "time"

// Session links a user to an active interaction context. For any user at most
// one non-expired session exists at a time; lastActivity never precedes
// createdAt.
type Session struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// EndSessionRequest represents a request to end a session
type EndSessionRequest struct {
	SessionID string `json:"session_id"`
}
