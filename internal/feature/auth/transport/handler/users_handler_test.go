package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/domain/entity"
)

type mockUsersUsecase struct {
	ListUsersFunc  func(ctx context.Context) ([]entity.User, error)
	CreateUserFunc func(ctx context.Context, user *entity.User) error
}

func (m *mockUsersUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return []entity.User{}, nil
}

func (m *mockUsersUsecase) CreateUser(ctx context.Context, user *entity.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, user)
	}
	return nil
}

func newUsersRouter(uc UsersUsecase) *gin.Engine {
	h := NewUsersHandler(uc)
	r := gin.New()
	r.GET("/users", h.List)
	r.POST("/users", h.Create)
	return r
}

func TestUsersHandler_List(t *testing.T) {
	t.Parallel()

	router := newUsersRouter(&mockUsersUsecase{
		ListUsersFunc: func(context.Context) ([]entity.User, error) {
			return []entity.User{{ID: "1", Username: "alice", Email: "a@x.io", Password: "h"}}, nil
		},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"1","username":"alice","email":"a@x.io","password":"h"}]`, w.Body.String())
}

func TestUsersHandler_List_Empty(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	newUsersRouter(&mockUsersUsecase{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUsersHandler_List_Error(t *testing.T) {
	t.Parallel()

	router := newUsersRouter(&mockUsersUsecase{
		ListUsersFunc: func(context.Context) ([]entity.User, error) { return nil, errors.New("db down") },
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "UserCollectionUnavailable")
}

func TestUsersHandler_Create(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name           string
		body           gin.H
		createErr      error
		expectedStatus int
	}{
		{name: "created", body: gin.H{"id": "9", "username": "bob", "email": "b@x.io", "password": string(hash)}, expectedStatus: http.StatusCreated},
		{name: "missing field", body: gin.H{"id": "9", "email": "b@x.io", "password": string(hash)}, expectedStatus: http.StatusBadRequest},
		{name: "plaintext password", body: gin.H{"id": "9", "username": "bob", "email": "b@x.io", "password": "hunter22"}, expectedStatus: http.StatusBadRequest},
		{name: "duplicate", body: gin.H{"id": "9", "username": "bob", "email": "b@x.io", "password": string(hash)}, createErr: fmt.Errorf("insert: %w", domain.ErrEmailAlreadyExists), expectedStatus: http.StatusConflict},
		{name: "store failure", body: gin.H{"id": "9", "username": "bob", "email": "b@x.io", "password": string(hash)}, createErr: errors.New("disk full"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var created *entity.User
			router := newUsersRouter(&mockUsersUsecase{
				CreateUserFunc: func(_ context.Context, u *entity.User) error {
					created = u
					return tt.createErr
				},
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/users", tt.body))
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				require.NotNil(t, created)
				var got entity.User
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, *created, got)
			}
		})
	}
}
