package memory

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
)

func TestUserMemoryStorage_RegisterUser(t *testing.T) {
	storage := NewUserMemoryStorage()

	t.Run("Successful user registration", func(t *testing.T) {
		user, err := storage.RegisterUser("test@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "test@example.com", user.Email)
	})

	t.Run("Register user with duplicate email", func(t *testing.T) {
		_, err := storage.RegisterUser("duplicate@example.com", "password123")
		require.NoError(t, err)

		_, err = storage.RegisterUser("duplicate@example.com", "anotherpassword")
		assert.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))
		assert.Contains(t, err.Error(), "already been taken")
	})

	t.Run("Register user with blank fields", func(t *testing.T) {
		_, err := storage.RegisterUser("", "")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))
		assert.Contains(t, err.Error(), "email can't be blank")
		assert.Contains(t, err.Error(), "password can't be blank")
	})
}

func TestUserMemoryStorage_LoginUser(t *testing.T) {
	storage := NewUserMemoryStorage()

	originalJWTSecret := os.Getenv("JWT_SECRET")
	err := os.Setenv("JWT_SECRET", "test_secret_key_for_jwt")
	require.NoError(t, err)
	defer os.Setenv("JWT_SECRET", originalJWTSecret)

	email := "login@example.com"
	password := "loginpassword123"

	registered, err := storage.RegisterUser(email, password)
	require.NoError(t, err)

	t.Run("Successful login returns token and user", func(t *testing.T) {
		token, user, err := storage.LoginUser(email, password)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		require.NotNil(t, user)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, email, user.Email)
	})

	t.Run("Wrong password and unknown email fail identically", func(t *testing.T) {
		_, _, errWrongPassword := storage.LoginUser(email, "wrongpassword")
		_, _, errUnknownEmail := storage.LoginUser("nobody@example.com", password)

		require.Error(t, errWrongPassword)
		require.Error(t, errUnknownEmail)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
		assert.Equal(t, "UNAUTHENTICATED", apperr.Code(errWrongPassword))
		assert.Equal(t, "UNAUTHENTICATED", apperr.Code(errUnknownEmail))
	})
}

func TestUserMemoryStorage_GetUserById(t *testing.T) {
	storage := NewUserMemoryStorage()

	registered, err := storage.RegisterUser("byid@example.com", "password123")
	require.NoError(t, err)

	t.Run("Successfully get user by ID", func(t *testing.T) {
		user, err := storage.GetUserById(registered.ID)
		require.NoError(t, err)
		assert.Equal(t, registered.Email, user.Email)
	})

	t.Run("Error when user not found", func(t *testing.T) {
		_, err := storage.GetUserById("999")
		assert.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))
	})
}
