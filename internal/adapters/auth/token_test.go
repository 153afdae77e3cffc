package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, secret, subject, email string, roles []string, expiry time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email: email,
		Roles: roles,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	verifier := NewJWTVerifier(secret)

	token := mintToken(t, secret, "user-123", "u@example.com", []string{"admin", "attendee"}, time.Hour)

	viewer, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", viewer.UserID)
	assert.Equal(t, "u@example.com", viewer.Email)
	assert.Equal(t, []string{"admin", "attendee"}, viewer.Roles)
	assert.True(t, viewer.IsAdmin())
}

func TestJWTVerifier_Verify_wrong_secret(t *testing.T) {
	verifier := NewJWTVerifier("right-secret")
	token := mintToken(t, "wrong-secret", "user-123", "u@example.com", nil, time.Hour)

	_, err := verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifier_Verify_expired(t *testing.T) {
	secret := "test-secret"
	verifier := NewJWTVerifier(secret)
	token := mintToken(t, secret, "user-123", "u@example.com", nil, -time.Minute)

	_, err := verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifier_Verify_non_admin(t *testing.T) {
	secret := "test-secret"
	verifier := NewJWTVerifier(secret)
	token := mintToken(t, secret, "user-9", "v@example.com", []string{"attendee"}, time.Hour)

	viewer, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.False(t, viewer.IsAdmin())
}
