package models

import (
	"time"
)

// SessionInfo はRedisに保存されるセッション情報を表します。
// ログイン時に書き込まれ、ログアウト時に削除されます。
type SessionInfo struct {
	UserID   uint      `json:"userID"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issuedAt"`
}
