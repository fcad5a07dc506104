// Package session はクライアントローカルのセッションフラグの保存先を提供します。
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"courtside_auth/internal/feature/auth/usecase"
)

var _ usecase.KeyValueStore = (*KVRedis)(nil)

// KVRedis はRedisを使ったusecase.KeyValueStoreの実装です。
// 値はTTLなしで保存され、削除されるまで残ります。
type KVRedis struct {
	client *redis.Client
	prefix string
}

// NewKVRedis は新しいKVRedisを生成します。prefixが空の場合は"kv"を使います。
func NewKVRedis(client *redis.Client, prefix string) *KVRedis {
	if prefix == "" {
		prefix = "kv"
	}
	return &KVRedis{
		client: client,
		prefix: prefix,
	}
}

// redisKey はストアのキーに対応するRedisキーを返します。
func (r *KVRedis) redisKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

// Get はkeyの値を取得します。
func (r *KVRedis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.redisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", usecase.ErrKeyNotFound
		}
		return "", err
	}
	return v, nil
}

// Set はkeyにvalueを期限なしで保存します。
func (r *KVRedis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.redisKey(key), value, 0).Err()
}

// Delete は1回のDELでkeysを削除します。
func (r *KVRedis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.redisKey(k)
	}
	return r.client.Del(ctx, full...).Err()
}
