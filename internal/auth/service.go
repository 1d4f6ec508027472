package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service issues and verifies bearer tokens. Login is email-only and always
// succeeds with a fresh user id; real identity providers slot in behind the
// same surface.
type Service struct {
	secret   []byte
	tokenTTL time.Duration
	users    *UserStore
	logger   *zap.Logger
}

// NewService creates a new auth service
func NewService(secret string, tokenTTL time.Duration, users *UserStore, logger *zap.Logger) *Service {
	return &Service{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		users:    users,
		logger:   logger,
	}
}

// Login mints a user identity for the email and returns a signed token
func (s *Service) Login(email string) (string, *User, error) {
	user := &User{
		UserID:    fmt.Sprintf("user_%s", uuid.NewString()),
		Email:     email,
		CreatedAt: time.Now(),
	}

	if err := s.users.CreateUser(user); err != nil {
		return "", nil, fmt.Errorf("failed to record user: %w", err)
	}

	now := time.Now()
	claims := &Claims{
		UserID: user.UserID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("email", email), zap.String("user_id", user.UserID))
	return token, user, nil
}

// Verify parses and validates a bearer token, returning the caller identity
func (s *Service) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
