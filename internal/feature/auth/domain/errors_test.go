package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageAndCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{"all fields required", ErrAllFieldsRequired, "AllFieldsRequired", "All fields are required"},
		{"collection unavailable", ErrUserCollectionUnavailable, "UserCollectionUnavailable", "Failed to load users, please try again later"},
		{"email not found", ErrEmailNotFound, "EmailNotFound", "Email is incorrect"},
		{"password mismatch", ErrPasswordMismatch, "PasswordMismatch", "Password is incorrect"},
		{"email exists", ErrEmailAlreadyExists, "EmailAlreadyExists", "Email already exists"},
		{"email not valid", ErrEmailNotValid, "EmailNotValid", "Email is not valid"},
		{"password too short", ErrPasswordTooShort, "PasswordTooShort", "Password must be at least 6 characters long"},
		{"generic", ErrSomethingWentWrong, "SomethingWentWrong", "Something went wrong, please try again"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, IsRejection(tt.err))
			assert.Equal(t, tt.code, Code(tt.err))
			assert.Equal(t, tt.message, Message(tt.err))
		})
	}
}

func TestMessage_WrappedRejection(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("create user: %w", ErrSomethingWentWrong)

	assert.True(t, IsRejection(err))
	assert.Equal(t, "SomethingWentWrong", Code(err))
}

func TestMessage_UnknownErrorFallsBackToGeneric(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset by peer")

	assert.False(t, IsRejection(err))
	assert.Equal(t, "SomethingWentWrong", Code(err))
	assert.Equal(t, Message(ErrSomethingWentWrong), Message(err))
}
