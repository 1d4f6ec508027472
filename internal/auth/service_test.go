package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(secret string) *Service {
	return NewService(secret, 24*time.Hour, NewUserStore(), zap.NewNop())
}

func TestLoginAndVerifyRoundtrip(t *testing.T) {
	svc := newTestAuthService("test-secret")

	token, user, err := svc.Login("ada@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.UserID, "user_"))
	assert.Equal(t, "ada@example.com", user.Email)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, identity.UserID)
	assert.Equal(t, user.Email, identity.Email)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestAuthService("test-secret")

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := newTestAuthService("secret-a")
	verifier := newTestAuthService("secret-b")

	token, _, err := issuer.Login("ada@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Hour, NewUserStore(), zap.NewNop())

	token, _, err := svc.Login("ada@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestLoginsMintDistinctUsers(t *testing.T) {
	svc := newTestAuthService("test-secret")

	_, first, err := svc.Login("ada@example.com")
	require.NoError(t, err)
	_, second, err := svc.Login("ada@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first.UserID, second.UserID)
}
