// Package entity はauthフィーチャーのドメインエンティティを定義します。
package entity

// User は参照ユーザーコレクションの1レコードです。
// Passwordは常にbcryptダイジェストで、平文は保持しません。
type User struct {
	// IDは登録時にクライアント側で生成されるUUIDです。
	ID string `json:"id"`

	// Usernameは認証後に表示される名前です。
	Username string `json:"username"`

	// Emailはログイン時にユーザーを特定します。比較は完全一致で大文字小文字を区別します。
	Email string `json:"email"`

	// Passwordはソルト付きの一方向ハッシュです。
	Password string `json:"password"`
}
