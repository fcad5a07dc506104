package dto

// RegisterReq は/registerエンドポイントのリクエストボディを表します。
// 必須・メール形式・長さのチェックはバリデーターで行い、
// 拒否時に利用者向けメッセージを返せるようにしています。
type RegisterReq struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// CreateUserReq はPOST /usersのボディです。フォーム側で検証・ハッシュ化済みのレコードです。
type CreateUserReq struct {
	ID       string `json:"id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
