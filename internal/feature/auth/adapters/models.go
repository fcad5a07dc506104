// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"time"

	"courtside_auth/internal/feature/auth/domain/entity"
)

// UserModel はusersテーブルのGORMモデルです。
// Seqで登録順を保持し、IDはクライアントに見える識別子です。
type UserModel struct {
	Seq       uint      `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"uniqueIndex;size:64;not null"`
	Username  string    `gorm:"size:255;not null"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"`
	Password  string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName はGORM用のテーブル名を返します。
func (UserModel) TableName() string {
	return "users"
}

// ToEntity はGORMモデルをドメインエンティティに変換します。
func (m *UserModel) ToEntity() entity.User {
	return entity.User{
		ID:       m.ID,
		Username: m.Username,
		Email:    m.Email,
		Password: m.Password,
	}
}

// UserModelFromEntity はドメインエンティティをGORMモデルに変換します。
func UserModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	}
}

// KVModel はローカルのセッションフラグを保持するキー・バリューテーブルのGORMモデルです。
type KVModel struct {
	Name      string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName はGORM用のテーブル名を返します。
func (KVModel) TableName() string {
	return "kv_entries"
}

// Models はAutoMigrate用に、このパッケージが永続化するモデルを列挙します。
func Models() []any {
	return []any{&UserModel{}, &KVModel{}}
}
