// Package cache はリポジトリインターフェースのキャッシュ実装を提供します。
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"courtside_auth/internal/feature/auth/domain/entity"
	"courtside_auth/internal/feature/auth/usecase"
)

// DefaultTTL はキャッシュしたユーザーコレクションの有効期間です。
const DefaultTTL = 5 * time.Minute

var _ usecase.UserDirectory = (*CachingUserDirectory)(nil)

// CachingUserDirectory はUserDirectoryにRedisキャッシュを付加するデコレーターです。
// コレクション全体を1つのキーにキャッシュし、作成のたびに破棄します。
type CachingUserDirectory struct {
	inner     usecase.UserDirectory
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingUserDirectory はinnerをRedisキャッシュでラップします。
// ttlが0の場合はDefaultTTL、namespaceが空の場合は"users"を使います。
func NewCachingUserDirectory(rdb *redis.Client, ttl time.Duration, inner usecase.UserDirectory, namespace string) *CachingUserDirectory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserDirectory{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingUserDirectory) key() string {
	return c.namespace + ":all"
}

// GetUsers はキャッシュからコレクションを返し、無ければinnerから取得します。
func (c *CachingUserDirectory) GetUsers(ctx context.Context) ([]entity.User, error) {
	// Redis未設定ならキャッシュを使わない
	if c.rdb == nil {
		return c.inner.GetUsers(ctx)
	}

	// 1) キャッシュ確認
	if b, err := c.rdb.Get(ctx, c.key()).Bytes(); err == nil && len(b) > 0 {
		var out []entity.User
		if err := json.Unmarshal(b, &out); err == nil && out != nil {
			return out, nil
		}
		// 壊れたキャッシュは削除
		_ = c.rdb.Del(ctx, c.key()).Err()
	}

	// 2) ディレクトリから取得
	out, err := c.inner.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュに保存（失敗しても続行）
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, c.key(), b, c.ttl).Err(); err != nil {
			slog.Warn("failed to cache users", "error", err)
		}
	}
	return out, nil
}

// CreateUser はinnerで作成したあと、キャッシュ済みコレクションを無効化します。
func (c *CachingUserDirectory) CreateUser(ctx context.Context, u *entity.User) error {
	if err := c.inner.CreateUser(ctx, u); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, c.key()).Err(); err != nil {
		// 無効化に失敗するとTTL切れまで新規ユーザーが見えない
		slog.Warn("failed to invalidate user cache", "error", err)
	}
	return nil
}
