package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"courtside_auth/internal/feature/auth/usecase"
)

// kvGorm はSQLテーブル上のKeyValueStore実装です。CLIはここにセッションフラグを保存します。
type kvGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.KeyValueStore = (*kvGorm)(nil)

// NewKVGorm はdb上のkvGormを生成します。kv_entriesテーブルはマイグレーション済みである必要があります。
func NewKVGorm(db *gorm.DB) *kvGorm {
	return &kvGorm{db: db, now: time.Now}
}

// Get はkeyの値を返します。存在しない場合はusecase.ErrKeyNotFoundを返します。
func (r *kvGorm) Get(ctx context.Context, key string) (string, error) {
	var m KVModel
	if err := r.db.WithContext(ctx).Where("name = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usecase.ErrKeyNotFound
		}
		return "", err
	}
	return m.Value, nil
}

// Set はkeyにvalueをupsertします。
func (r *kvGorm) Set(ctx context.Context, key, value string) error {
	m := KVModel{Name: key, Value: value, UpdatedAt: r.now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}

// Delete はkeysを削除します。存在しないキーは無視します。
func (r *kvGorm) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("name IN ?", keys).Delete(&KVModel{}).Error
}
