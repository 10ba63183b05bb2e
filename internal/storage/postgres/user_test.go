package postgres

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
)

func TestUserPostgresStorage_RegisterUser(t *testing.T) {
	storage := NewUserPostgresStorage()

	t.Run("Successful user registration", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		email := "new@example.com"
		password := "password123"

		user, err := storage.RegisterUser(email, password)
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, email, user.Email)
	})

	t.Run("Register user with duplicate email", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		email := "duplicate@example.com"

		_, err := storage.RegisterUser(email, "password123")
		require.NoError(t, err)

		_, err = storage.RegisterUser(email, "anotherpassword")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email has already been taken")
		assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))
	})

	t.Run("Blank fields are reported together", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.RegisterUser("", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email can't be blank")
		assert.Contains(t, err.Error(), "password can't be blank")
		assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))
	})
}

func TestUserPostgresStorage_LoginUser(t *testing.T) {
	storage := NewUserPostgresStorage()

	originalJWTSecret := os.Getenv("JWT_SECRET")
	err := os.Setenv("JWT_SECRET", "test_secret_key_for_jwt")
	require.NoError(t, err)
	defer os.Setenv("JWT_SECRET", originalJWTSecret)

	t.Run("Successful login", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		email := "login@example.com"
		password := "loginpassword123"

		_, err = storage.RegisterUser(email, password)
		require.NoError(t, err)

		token, user, err := storage.LoginUser(email, password)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		require.NotNil(t, user)
		assert.Equal(t, email, user.Email)

		// a JWT is three dot-separated parts
		parts := 0
		for _, char := range token {
			if char == '.' {
				parts++
			}
		}
		assert.Equal(t, 2, parts)
	})

	t.Run("Wrong password and unknown email fail identically", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		email := "wrongpass@example.com"

		_, err = storage.RegisterUser(email, "correctpassword123")
		require.NoError(t, err)

		_, _, errWrongPassword := storage.LoginUser(email, "wrongpassword")
		require.Error(t, errWrongPassword)

		_, _, errUnknownEmail := storage.LoginUser("nobody@example.com", "anypassword")
		require.Error(t, errUnknownEmail)

		// no distinguishing between the two failure causes
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
		assert.Equal(t, "UNAUTHENTICATED", apperr.Code(errWrongPassword))
		assert.Equal(t, "UNAUTHENTICATED", apperr.Code(errUnknownEmail))
	})
}

func TestUserPostgresStorage_GetUserById(t *testing.T) {
	storage := NewUserPostgresStorage()

	t.Run("Getting exists user", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		registered, err := storage.RegisterUser("byid@example.com", "password123")
		require.NoError(t, err)

		user, err := storage.GetUserById(registered.ID)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, "byid@example.com", user.Email)
	})

	t.Run("Trying to get not exist user", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.GetUserById("999")
		assert.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))
	})
}
