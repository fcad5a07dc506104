// Package domain はauthフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

// ログイン・登録フォームの拒否理由です。
// この集合は閉じており、フォームが報告する失敗は必ずいずれか1つに対応します。
var (
	// ErrAllFieldsRequired は必須項目のいずれかが空の場合に返されます。
	ErrAllFieldsRequired = errors.New("all fields are required")

	// ErrUserCollectionUnavailable は参照ユーザーコレクションを取得できなかった場合に返されます。
	ErrUserCollectionUnavailable = errors.New("failed to load users")

	// ErrEmailNotFound はログイン時に該当するメールアドレスのユーザーがいない場合に返されます。
	ErrEmailNotFound = errors.New("email not found")

	// ErrPasswordMismatch はログイン時にパスワードが保存済みハッシュと一致しない場合に返されます。
	ErrPasswordMismatch = errors.New("wrong password")

	// ErrEmailAlreadyExists は登録時にメールアドレスが既に使われている場合に返されます。
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrEmailNotValid は登録時にメールアドレスが形式に合わない場合に返されます。
	ErrEmailNotValid = errors.New("email is not valid")

	// ErrPasswordTooShort は登録時にパスワードが最低長に満たない場合に返されます。
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrSomethingWentWrong はユーザー作成中の外部依存の失敗をまとめます。
	// 原因はログに出力し、画面には表示しません。
	ErrSomethingWentWrong = errors.New("something went wrong")
)

type reason struct {
	err     error
	code    string
	message string
}

var reasons = []reason{
	{ErrAllFieldsRequired, "AllFieldsRequired", "All fields are required"},
	{ErrUserCollectionUnavailable, "UserCollectionUnavailable", "Failed to load users, please try again later"},
	{ErrEmailNotFound, "EmailNotFound", "Email is incorrect"},
	{ErrPasswordMismatch, "PasswordMismatch", "Password is incorrect"},
	{ErrEmailAlreadyExists, "EmailAlreadyExists", "Email already exists"},
	{ErrEmailNotValid, "EmailNotValid", "Email is not valid"},
	{ErrPasswordTooShort, "PasswordTooShort", "Password must be at least 6 characters long"},
	{ErrSomethingWentWrong, "SomethingWentWrong", "Something went wrong, please try again"},
}

func lookup(err error) (reason, bool) {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r, true
		}
	}
	return reason{}, false
}

// IsRejection はerrが拒否理由の集合に属するかを返します。
func IsRejection(err error) bool {
	_, ok := lookup(err)
	return ok
}

// Code は拒否理由の機械可読な名前を返します。
// 集合外のエラーは"SomethingWentWrong"になります。
func Code(err error) string {
	if r, ok := lookup(err); ok {
		return r.code
	}
	return "SomethingWentWrong"
}

// Message はフォームにインライン表示するメッセージを返します。
// 集合外のエラーは汎用メッセージになります。
func Message(err error) string {
	if r, ok := lookup(err); ok {
		return r.message
	}
	r, _ := lookup(ErrSomethingWentWrong)
	return r.message
}
