package usecase

import (
	"context"
	"errors"
	"fmt"
)

// セッションフラグの永続化キーです。
const (
	KeyIsAuthenticated = "isAuthenticated"
	KeyUser            = "user"
)

// KeyValueStore はセッションフラグの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type KeyValueStore interface {
	// Get はkeyの値を返します。存在しない場合はErrKeyNotFoundを返します。
	Get(ctx context.Context, key string) (string, error)

	// Set はkeyにvalueを保存し、以前の値を置き換えます。値は期限切れになりません。
	Set(ctx context.Context, key, value string) error

	// Delete は指定したキーを削除します。存在しないキーはエラーになりません。
	Delete(ctx context.Context, keys ...string) error
}

// SessionFlags はクライアントローカルの認証済みマーカーです。
// トークンも有効期限も持たず、このクライアントがログインしたことと誰としてかだけを記録します。
type SessionFlags struct {
	store     KeyValueStore
	namespace string
}

// NewSessionFlags は1クライアント分のセッションフラグを返します。
// namespaceが空の場合はキーをそのまま（"isAuthenticated"、"user"）保存し、
// それ以外は"<namespace>:"を前置して1つのストアで複数クライアントを扱います。
func NewSessionFlags(store KeyValueStore, namespace string) *SessionFlags {
	return &SessionFlags{store: store, namespace: namespace}
}

func (s *SessionFlags) key(name string) string {
	if s.namespace == "" {
		return name
	}
	return s.namespace + ":" + name
}

// SetAuthenticated はクライアントをusernameとして認証済みにします。
func (s *SessionFlags) SetAuthenticated(ctx context.Context, username string) error {
	if err := s.store.Set(ctx, s.key(KeyIsAuthenticated), "true"); err != nil {
		return fmt.Errorf("failed to set %s: %w", KeyIsAuthenticated, err)
	}
	if err := s.store.Set(ctx, s.key(KeyUser), username); err != nil {
		return fmt.Errorf("failed to set %s: %w", KeyUser, err)
	}
	return nil
}

// IsAuthenticated はフラグがちょうど"true"かどうかを返します。
func (s *SessionFlags) IsAuthenticated(ctx context.Context) (bool, error) {
	v, err := s.store.Get(ctx, s.key(KeyIsAuthenticated))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return v == "true", nil
}

// Username は保存されたユーザー名を返します。無ければ""です。
func (s *SessionFlags) Username(ctx context.Context) (string, error) {
	v, err := s.store.Get(ctx, s.key(KeyUser))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

// Clear は両方のキーを削除してセッションを終了します。
func (s *SessionFlags) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.key(KeyIsAuthenticated), s.key(KeyUser))
}
