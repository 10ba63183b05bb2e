package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	t.Run("Sentinel errors map to their codes", func(t *testing.T) {
		assert.Equal(t, "UNAUTHENTICATED", Code(ErrUnauthenticated))
		assert.Equal(t, "UNAUTHORIZED", Code(ErrUnauthorized))
		assert.Equal(t, "NOT_FOUND", Code(ErrNotFound))
	})

	t.Run("Wrapped sentinel errors keep their code", func(t *testing.T) {
		err := fmt.Errorf("photo 42: %w", ErrNotFound)
		assert.Equal(t, "NOT_FOUND", Code(err))

		err = fmt.Errorf("unauthorized: %w", ErrUnauthorized)
		assert.Equal(t, "UNAUTHORIZED", Code(err))
	})

	t.Run("Validation and upload errors", func(t *testing.T) {
		assert.Equal(t, "VALIDATION_ERROR", Code(Validation("title can't be blank")))
		assert.Equal(t, "UPLOAD_FAILED", Code(Upload(errors.New("disk full"))))
	})

	t.Run("Unknown errors fall back to internal", func(t *testing.T) {
		assert.Equal(t, "INTERNAL_ERROR", Code(errors.New("boom")))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Aggregates all field messages into one error", func(t *testing.T) {
		err := Validation("email can't be blank", "password can't be blank")
		assert.Equal(t, "email can't be blank, password can't be blank", err.Error())
		assert.Len(t, err.Messages, 2)
	})
}

func TestUploadError(t *testing.T) {
	t.Run("Wraps the underlying cause", func(t *testing.T) {
		cause := errors.New("blob store unreachable")
		err := Upload(cause)
		assert.Equal(t, "upload failed: blob store unreachable", err.Error())
		assert.True(t, errors.Is(err, cause))
	})
}
