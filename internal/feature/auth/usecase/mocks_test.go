package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"courtside_auth/internal/feature/auth/domain/entity"
	"courtside_auth/internal/platform/password"
)

// mockUserDirectory はUserDirectoryインターフェースのモック実装です。
type mockUserDirectory struct {
	// GetUsersFunc はGetUsersメソッドが呼ばれたときに実行されます。
	GetUsersFunc func(ctx context.Context) ([]entity.User, error)
	// CreateUserFunc はCreateUserメソッドが呼ばれたときに実行されます。
	CreateUserFunc func(ctx context.Context, user *entity.User) error
}

func (m *mockUserDirectory) GetUsers(ctx context.Context) ([]entity.User, error) {
	if m.GetUsersFunc != nil {
		return m.GetUsersFunc(ctx)
	}
	return []entity.User{}, nil
}

func (m *mockUserDirectory) CreateUser(ctx context.Context, user *entity.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, user)
	}
	return nil
}

// memoryStore はインメモリのKeyValueStoreです。
type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
	// SetErr がnilでなければ、すべてのSetがこれを返します。
	SetErr error
	// GetErr がnilでなければ、すべてのGetがこれを返します。
	GetErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *memoryStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.values))
	for k := range m.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// failingHasher はすべてのHash呼び出しで失敗します。
type failingHasher struct{ PasswordHasher }

func (failingHasher) Hash(string) (string, error) { return "", errors.New("entropy exhausted") }

var testHasher = password.NewBcrypt(bcrypt.MinCost)

// mustHash は低コストでpwのbcryptダイジェストを返します。
func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := testHasher.Hash(pw)
	require.NoError(t, err)
	return h
}

// referenceUsers はテスト共通のコレクション（alice / "secret1"）を返します。
func referenceUsers(t *testing.T) []entity.User {
	t.Helper()
	return []entity.User{
		{ID: "1", Username: "alice", Email: "a@x.io", Password: mustHash(t, "secret1")},
	}
}
