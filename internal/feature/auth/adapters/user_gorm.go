package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/domain/entity"
	"courtside_auth/internal/feature/auth/usecase"
)

// pgUniqueViolation は一意制約違反を表すPostgreSQLのSQLSTATEです。
const pgUniqueViolation = "23505"

// userGorm はUserDirectoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserDirectoryを実装していることをコンパイル時に検証します。
var _ usecase.UserDirectory = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// GetUsers は全ユーザーを登録順に返します。テーブルが空の場合は空のスライス（nilではない）を返します。
func (r *userGorm) GetUsers(ctx context.Context) ([]entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]entity.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].ToEntity())
	}
	return users, nil
}

// CreateUser はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailAlreadyExistsを返します。
// IDの重複はメールアドレスの重複とは区別し、通常のエラーとして返します。
func (r *userGorm) CreateUser(ctx context.Context, u *entity.User) error {
	err := r.db.WithContext(ctx).Create(UserModelFromEntity(u)).Error
	if err == nil {
		return nil
	}
	if !isDuplicate(err) {
		return err
	}

	// 一意インデックスはIDとEmailの2つなので、どちらが衝突したかを確認する
	taken, lookupErr := r.emailTaken(ctx, u.Email)
	if lookupErr != nil {
		return fmt.Errorf("failed to check email after unique violation: %w", errors.Join(err, lookupErr))
	}
	if taken {
		return domain.ErrEmailAlreadyExists
	}
	return fmt.Errorf("user id %q already exists: %w", u.ID, err)
}

func (r *userGorm) emailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// isDuplicate はerrが一意制約違反（gormによる変換済み、またはpgxの生エラー）かどうかを返します。
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
