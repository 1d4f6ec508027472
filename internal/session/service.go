package session

import (
	"go.uber.org/zap"
)

// Service layers ownership validation over the Store. The store answers
// "does this session exist"; the service answers "may this caller use it",
// distinguishing not-found from forbidden.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new session service
func NewService(store *Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Start creates a new session for the user, replacing any live one
func (s *Service) Start(userID string) string {
	sessionID := s.store.StartSession(userID)
	s.logger.Info("Session started",
		zap.String("user_id", userID),
		zap.String("session_id", sessionID))
	return sessionID
}

// Resolve validates that the session exists, is live, and belongs to the
// caller, then extends its liveness. The touch stays applied even if the
// caller's request fails later.
func (s *Service) Resolve(sessionID, callerUserID string) (*Session, error) {
	sess, ok := s.store.GetSession(sessionID)
	if !ok {
		return nil, NewNotFoundError(sessionID)
	}

	if sess.UserID != callerUserID {
		return nil, NewForbiddenError(sessionID)
	}

	if !s.store.TouchSession(sessionID) {
		// Expired between the read and the touch
		return nil, NewNotFoundError(sessionID)
	}

	// Re-read so the caller sees the activity bump just applied
	fresh, ok := s.store.GetSession(sessionID)
	if !ok {
		return nil, NewNotFoundError(sessionID)
	}
	return fresh, nil
}

// End terminates the caller's session after ownership validation
func (s *Service) End(sessionID, callerUserID string) error {
	sess, ok := s.store.GetSession(sessionID)
	if !ok {
		return NewNotFoundError(sessionID)
	}

	if sess.UserID != callerUserID {
		return NewForbiddenError(sessionID)
	}

	s.store.EndSession(sessionID)
	s.logger.Info("Session ended",
		zap.String("user_id", callerUserID),
		zap.String("session_id", sessionID))
	return nil
}
