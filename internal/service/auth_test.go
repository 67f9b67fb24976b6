package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/recipebook-backend/internal/models"
)

func TestRegisterAndValidateToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "secret")

	token, err := svc.Register("Alice", "alice@example.com", "testpass123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@example.com").Error)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NotEqual(t, "testpass123", user.PasswordHash)
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "secret")

	_, err := svc.Register("Alice", "alice@example.com", "testpass123")
	require.NoError(t, err)

	_, err = svc.Register("Bob", "alice@example.com", "otherpass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterEmailTakenByExistingRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "secret")

	createUser(t, db, "alice@example.com")

	_, err := svc.Register("Alice", "alice@example.com", "testpass123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "secret")

	_, err := svc.Register("Alice", "alice@example.com", "testpass123")
	require.NoError(t, err)

	_, err = svc.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "testpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := setupTestDB(t)

	token, err := NewAuthService(db, "secret-one").Register("Alice", "alice@example.com", "testpass123")
	require.NoError(t, err)

	_, err = NewAuthService(db, "secret-two").ValidateToken(token)
	assert.Error(t, err)
}
