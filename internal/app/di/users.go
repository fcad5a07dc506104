package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "courtside_auth/internal/feature/auth/adapters"
	"courtside_auth/internal/feature/auth/usecase"
	"courtside_auth/internal/platform/cache"
)

// NewUserDirectory はSQLのユーザーコレクションをRedisキャッシュでラップして生成します。
// rdbがnilの場合、キャッシュは素通しになります。
func NewUserDirectory(db *gorm.DB, rdb *redis.Client, ttl time.Duration) usecase.UserDirectory {
	return cache.NewCachingUserDirectory(rdb, ttl, authadapters.NewUserGorm(db), "users")
}
