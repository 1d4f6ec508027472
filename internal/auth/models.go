package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a human user in the system
type User struct {
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the authenticated caller attached to each request. The rest of
// the system trusts it for all session and user scoping decisions.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Claims is the JWT payload issued at login
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email string `json:"email"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
