package models

// LoginRequest はクライアントからのログインリクエストを表します。
// 資格情報が一致した場合、新しいセッショントークンが発行されます。
type LoginRequest struct {
	UserName string `json:"username" binding:"required"` // ログインID
	Password string `json:"password" binding:"required"` // パスワード（平文で受信、保存はハッシュのみ）
}

// RegisterRequest はユーザー登録リクエストを表します。
type RegisterRequest struct {
	UserName string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
