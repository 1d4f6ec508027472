package auth

import (
	"fmt"
	"sync"
)

// UserStore keeps the users created at login. In-memory only: identities are
// reconstructed from zero on restart, matching the rest of the system.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewUserStore creates a new in-memory user store
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]*User),
	}
}

// CreateUser records a user
func (s *UserStore) CreateUser(user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return fmt.Errorf("user with id %s already exists", user.UserID)
	}

	s.users[user.UserID] = user
	return nil
}

// GetUser retrieves a user by ID
func (s *UserStore) GetUser(userID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}

	return user, nil
}
