package usecase

import (
	"fmt"
	"regexp"
	"unicode/utf16"

	"github.com/google/uuid"

	"courtside_auth/internal/feature/auth/domain"
	"courtside_auth/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength は登録時のパスワードの最低長です（UTF-16コードユニット数）。
	minPasswordLength = 6
)

// emailPattern は「何か@何か.何か」だけを確認する緩いパターンです。
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// newUserID は登録ユーザーのIDを生成します。
var newUserID = uuid.NewString

// LoginInput はログインフォームの入力内容です。
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput は登録フォームの入力内容です。
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// PasswordHasher はハッシュごとのランダムソルトでパスワードを一方向ハッシュ化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/password）ではなくコンシューマー（usecase）が定義します。
type PasswordHasher interface {
	// Hash はソルト付きのダイジェストを返します。
	Hash(password string) (string, error)
	// Compare はpasswordがダイジェストと一致すればnilを返します。
	Compare(hash, password string) error
}

func requireFields(values ...string) error {
	for _, v := range values {
		if v == "" {
			return domain.ErrAllFieldsRequired
		}
	}
	return nil
}

// passwordLength はブラウザのString.lengthと同じくUTF-16コードユニットで数えます。
func passwordLength(p string) int {
	return len(utf16.Encode([]rune(p)))
}

func findByEmail(users []entity.User, email string) (entity.User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return entity.User{}, false
}

// ValidateLogin はログイン入力を参照コレクションと照合します。
// usersがnilの場合はコレクション未取得、空スライスの場合は取得済みで空であることを表します。
// 成功時は一致したユーザーを返します。
func ValidateLogin(in LoginInput, users []entity.User, hasher PasswordHasher) (*entity.User, error) {
	if err := requireFields(in.Email, in.Password); err != nil {
		return nil, err
	}
	if users == nil {
		return nil, domain.ErrUserCollectionUnavailable
	}

	user, ok := findByEmail(users, in.Email)
	if !ok {
		return nil, domain.ErrEmailNotFound
	}
	if err := hasher.Compare(user.Password, in.Password); err != nil {
		return nil, domain.ErrPasswordMismatch
	}
	return &user, nil
}

// ValidateRegistration は登録入力を参照コレクションと照合します。
// 成功時は新しいIDとハッシュ化済みパスワードを持つ、保存用のレコードを返します。
func ValidateRegistration(in RegisterInput, users []entity.User, hasher PasswordHasher) (*entity.User, error) {
	if err := requireFields(in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}
	if _, exists := findByEmail(users, in.Email); exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, domain.ErrEmailNotValid
	}
	if passwordLength(in.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hashed, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", domain.ErrSomethingWentWrong, err)
	}
	return &entity.User{
		ID:       newUserID(),
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
	}, nil
}
