// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrKeyNotFound はキーが未設定または削除済みの場合にKeyValueStoreが返します。
	ErrKeyNotFound = errors.New("key not found")

	// ErrSubmissionInProgress は同じフォームで送信処理中に再送信された場合に返されます。
	ErrSubmissionInProgress = errors.New("submission already in progress")

	// ErrAlreadyRedirected は成功済みのフォームが再送信された場合に返されます。
	ErrAlreadyRedirected = errors.New("form already redirected")
)
