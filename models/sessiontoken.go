package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionToken モデルの定義
type SessionToken struct {
	gorm.Model
	UserID     uint      `gorm:"not null"`
	TokenID    string    `gorm:"uniqueIndex;not null"` // トークンのjti
	TokenType  string    `gorm:"not null"`             // "demo" または "registered"
	ExpiresAt  time.Time `gorm:"not null"`
	DeviceInfo string    // デバイス情報（User-Agent）
}
