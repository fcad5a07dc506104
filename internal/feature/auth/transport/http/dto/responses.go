package dto

import openapi_types "github.com/oapi-codegen/runtime/types"

// AuthRes はログイン・登録成功時にJSONクライアントへ返すレスポンスです。
type AuthRes struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
	User     string `json:"user"`
}

// ErrorRes はフォームの下に表示するエラーを運びます。
type ErrorRes struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// SessionRes は呼び出し元クライアントのセッションフラグを表します。
type SessionRes struct {
	ClientID        openapi_types.UUID `json:"clientId"`
	IsAuthenticated bool               `json:"isAuthenticated"`
	User            string             `json:"user,omitempty"`
}
