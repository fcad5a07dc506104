package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/domain/entity"
)

func TestValidateLogin(t *testing.T) {
	t.Parallel()

	users := referenceUsers(t)

	tests := []struct {
		name    string
		in      LoginInput
		users   []entity.User
		wantErr error
	}{
		{name: "success", in: LoginInput{Email: "a@x.io", Password: "secret1"}, users: users},
		{name: "empty email", in: LoginInput{Password: "secret1"}, users: users, wantErr: domain.ErrAllFieldsRequired},
		{name: "empty password", in: LoginInput{Email: "a@x.io"}, users: users, wantErr: domain.ErrAllFieldsRequired},
		{name: "empty fields win over missing collection", in: LoginInput{}, users: nil, wantErr: domain.ErrAllFieldsRequired},
		{name: "collection unavailable", in: LoginInput{Email: "a@x.io", Password: "secret1"}, users: nil, wantErr: domain.ErrUserCollectionUnavailable},
		{name: "unknown email", in: LoginInput{Email: "b@x.io", Password: "secret1"}, users: users, wantErr: domain.ErrEmailNotFound},
		{name: "email is case sensitive", in: LoginInput{Email: "A@x.io", Password: "secret1"}, users: users, wantErr: domain.ErrEmailNotFound},
		{name: "empty collection", in: LoginInput{Email: "a@x.io", Password: "secret1"}, users: []entity.User{}, wantErr: domain.ErrEmailNotFound},
		{name: "wrong password", in: LoginInput{Email: "a@x.io", Password: "wrong"}, users: users, wantErr: domain.ErrPasswordMismatch},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := ValidateLogin(tt.in, tt.users, testHasher)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", user.Username)
		})
	}
}

func TestValidateLogin_FirstMatchWins(t *testing.T) {
	t.Parallel()

	users := []entity.User{
		{ID: "1", Username: "first", Email: "dup@x.io", Password: mustHash(t, "secret1")},
		{ID: "2", Username: "second", Email: "dup@x.io", Password: mustHash(t, "secret2")},
	}

	user, err := ValidateLogin(LoginInput{Email: "dup@x.io", Password: "secret1"}, users, testHasher)
	require.NoError(t, err)
	assert.Equal(t, "first", user.Username)

	_, err = ValidateLogin(LoginInput{Email: "dup@x.io", Password: "secret2"}, users, testHasher)
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
}

func TestValidateRegistration(t *testing.T) {
	t.Parallel()

	users := referenceUsers(t)

	tests := []struct {
		name    string
		in      RegisterInput
		wantErr error
	}{
		{name: "success", in: RegisterInput{Username: "bob", Email: "b@x.io", Password: "hunter22"}},
		{name: "exactly six characters", in: RegisterInput{Username: "bob", Email: "b@x.io", Password: "abcdef"}},
		{name: "six multibyte characters", in: RegisterInput{Username: "bob", Email: "b@x.io", Password: "ぱすわーどだ"}},
		{name: "empty username", in: RegisterInput{Email: "b@x.io", Password: "hunter22"}, wantErr: domain.ErrAllFieldsRequired},
		{name: "empty email", in: RegisterInput{Username: "bob", Password: "hunter22"}, wantErr: domain.ErrAllFieldsRequired},
		{name: "empty password", in: RegisterInput{Username: "bob", Email: "b@x.io"}, wantErr: domain.ErrAllFieldsRequired},
		{name: "duplicate email", in: RegisterInput{Username: "bob", Email: "a@x.io", Password: "hunter22"}, wantErr: domain.ErrEmailAlreadyExists},
		{name: "duplicate checked before password length", in: RegisterInput{Username: "bob", Email: "a@x.io", Password: "abc"}, wantErr: domain.ErrEmailAlreadyExists},
		{name: "no at sign", in: RegisterInput{Username: "bob", Email: "bob.example.com", Password: "hunter22"}, wantErr: domain.ErrEmailNotValid},
		{name: "no dot after at", in: RegisterInput{Username: "bob", Email: "bob@example", Password: "hunter22"}, wantErr: domain.ErrEmailNotValid},
		{name: "email checked before password length", in: RegisterInput{Username: "bob", Email: "bob@example", Password: "abc"}, wantErr: domain.ErrEmailNotValid},
		{name: "five characters", in: RegisterInput{Username: "bob", Email: "b@x.io", Password: "abcde"}, wantErr: domain.ErrPasswordTooShort},
		{name: "three emoji count as six", in: RegisterInput{Username: "bob", Email: "b@x.io", Password: "😀😀😀"}},
		{name: "two emoji count as four", in: RegisterInput{Username: "bob", Email: "b@x.io", Password: "😀😀"}, wantErr: domain.ErrPasswordTooShort},
		{name: "password over 72 bytes", in: RegisterInput{Username: "bob", Email: "b@x.io", Password: strings.Repeat("a", 73)}},
		{name: "long multibyte password", in: RegisterInput{Username: "bob", Email: "b@x.io", Password: strings.Repeat("ぱ", 40)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := ValidateRegistration(tt.in, users, testHasher)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.in.Username, user.Username)
			assert.Equal(t, tt.in.Email, user.Email)
			assert.NotEqual(t, tt.in.Password, user.Password)
			assert.NoError(t, testHasher.Compare(user.Password, tt.in.Password))
		})
	}
}

func TestValidateRegistration_LooseEmailPattern(t *testing.T) {
	t.Parallel()

	for _, email := range []string{"a@b.c", "x y@b.c", "<a@b.c>", strings.Repeat("a", 50) + "@b.c"} {
		_, err := ValidateRegistration(RegisterInput{Username: "u", Email: email, Password: "hunter22"}, nil, testHasher)
		assert.NoError(t, err, email)
	}
}

func TestValidateRegistration_HashFailure(t *testing.T) {
	t.Parallel()

	_, err := ValidateRegistration(
		RegisterInput{Username: "bob", Email: "b@x.io", Password: "hunter22"},
		[]entity.User{},
		failingHasher{PasswordHasher: testHasher},
	)
	assert.ErrorIs(t, err, domain.ErrSomethingWentWrong)
	assert.False(t, errors.Is(err, domain.ErrPasswordTooShort))
}
