// Package di はアプリケーションコンポーネントを生成するDIファクトリを提供します。
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "courtside_auth/internal/feature/auth/adapters"
	"courtside_auth/internal/feature/auth/usecase"
	"courtside_auth/internal/platform/session"
)

// NewKeyValueStore はセッションフラグを保持するストアを生成します。
// Redisが利用可能な場合はRedis実装を返します。
// それ以外の場合はSQLデータベースにフォールバックします。
func NewKeyValueStore(rdb *redis.Client, db *gorm.DB) usecase.KeyValueStore {
	if rdb != nil {
		return session.NewKVRedis(rdb, "kv")
	}
	return authadapters.NewKVGorm(db)
}
