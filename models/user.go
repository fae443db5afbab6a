package models

import (
	"gorm.io/gorm"
)

// User モデルの定義
type User struct {
	gorm.Model
	UserName     string `gorm:"unique;not null"`           // ログインID
	PasswordHash string `gorm:"not null"`                  // bcryptハッシュ
	Role         string `gorm:"not null;default:'player'"` // "admin" または "player"
	QuizCount    int    `gorm:"not null;default:0"`        // 作成したクイズの数
	AttemptCount int    `gorm:"not null;default:0"`        // 解答した回数
}
