package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns all session state: the sessionID→Session table and the
// userID→sessionID index. The two maps are only ever updated together under
// the write lock, so no caller can observe one pointing at a session absent
// from the other. Expired sessions are evicted lazily on read and eagerly by
// the background sweep; both paths funnel through removeLocked and are
// idempotent against each other.
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	userIndex map[string]string

	expiryWindow time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// NewStore creates a session store with the given inactivity expiry window
func NewStore(expiryWindow time.Duration, logger *zap.Logger) *Store {
	return &Store{
		sessions:     make(map[string]*Session),
		userIndex:    make(map[string]string),
		expiryWindow: expiryWindow,
		now:          time.Now,
		logger:       logger,
	}
}

// StartSession creates a fresh session for the user, terminating any prior
// live session in the same critical section so two sessions for one user are
// never observable, not even transiently. It never fails.
func (s *Store) StartSession(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.userIndex[userID]; ok {
		s.removeLocked(existing)
	}

	sessionID := fmt.Sprintf("session_%s", uuid.NewString())
	now := s.now()

	s.sessions[sessionID] = &Session{
		SessionID:    sessionID,
		UserID:       userID,
		CreatedAt:    now,
		LastActivity: now,
	}
	s.userIndex[userID] = sessionID

	return sessionID
}

// GetSession returns the session if present and not expired. An expired
// session is evicted on the spot and reported as absent. The returned value
// is a copy so callers never see concurrent mutation.
func (s *Store) GetSession(sessionID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}

	if s.expiredLocked(sess) {
		s.removeLocked(sessionID)
		return nil, false
	}

	copied := *sess
	return &copied, true
}

// TouchSession advances lastActivity to now, resetting the inactivity clock.
// Returns false if the session is absent or expired (evicting it if so).
func (s *Store) TouchSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}

	if s.expiredLocked(sess) {
		s.removeLocked(sessionID)
		return false
	}

	sess.LastActivity = s.now()
	return true
}

// EndSession removes the session from both the table and the user index.
// Idempotent: ending an already-absent session is a no-op.
func (s *Store) EndSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(sessionID)
}

// Sweep scans all sessions and evicts expired ones. The background sweeper
// calls this periodically; tests can call it directly instead of waiting on
// wall-clock intervals.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for sessionID, sess := range s.sessions {
		if s.expiredLocked(sess) {
			expired = append(expired, sessionID)
		}
	}

	for _, sessionID := range expired {
		s.removeLocked(sessionID)
	}

	return len(expired)
}

// RunSweeper runs the periodic sweep until the context is cancelled. It is
// owned by the store's lifetime: the caller starts it once at process start
// and cancels it on shutdown.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			if evicted := s.Sweep(); evicted > 0 {
				s.logger.Info("Swept expired sessions", zap.Int("evicted", evicted))
			}
		}
	}
}

// Len reports the number of live entries in the session table
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expiredLocked(sess *Session) bool {
	return s.now().Sub(sess.LastActivity) > s.expiryWindow
}

// removeLocked deletes the session from both maps. Must hold s.mu.
func (s *Store) removeLocked(sessionID string) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	delete(s.sessions, sessionID)
	delete(s.userIndex, sess.UserID)
}
