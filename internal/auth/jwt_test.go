package auth

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	userID := uuid.New()
	email := gofakeit.Email()

	token, err := svc.Generate(userID, email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, email, claims.Email)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	token, err := NewJWTService("secret-a", 1).Generate(uuid.New(), gofakeit.Email())
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 1).Validate(token)
	assert.Error(t, err)
}

func TestJWT_GarbageRejected(t *testing.T) {
	_, err := NewJWTService("test-secret", 1).Validate("not-a-token")
	assert.Error(t, err)
}
