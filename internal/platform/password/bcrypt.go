// Package password は認証フォームが使うbcryptパスワードハッシャーを提供します。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost はユーザーコレクションに保存済みのハッシュと同じコストです。
	DefaultCost = 10

	// MaxPasswordBytes はbcryptが評価する入力の上限です。超過分は切り捨てます。
	MaxPasswordBytes = 72
)

// Bcrypt はbcryptでパスワードをハッシュ化します。ハッシュごとにランダムなソルトを持ちます。
type Bcrypt struct {
	cost int
}

// NewBcrypt はBcryptを生成します。範囲外のコストはDefaultCostになります。
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Cost は新しいハッシュに使うコストを返します。
func (b *Bcrypt) Cost() int {
	return b.cost
}

// Hash はpasswordのbcryptダイジェストを返します。
// 72バイトを超える入力は先頭72バイトだけをハッシュ化します。
func (b *Bcrypt) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare はpasswordがhashと一致すればnilを返します。コストは問いません。
func (b *Bcrypt) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
}

func truncate(password string) []byte {
	p := []byte(password)
	if len(p) > MaxPasswordBytes {
		p = p[:MaxPasswordBytes]
	}
	return p
}
