package models

import (
	"gorm.io/gorm"
)

// Quiz モデルの定義
type Quiz struct {
	gorm.Model
	UserID     uint       `gorm:"not null"`                 // 作成者（管理者）のID
	Title      string     `gorm:"not null"`                 // クイズのタイトル
	State      string     `gorm:"not null;default:'draft'"` // "draft", "published", "archived"
	ShareToken string     `gorm:"unique;not null"`          // 公開URL用トークン
	Questions  []Question `gorm:"foreignKey:QuizID"`        // 結びつく設問を取得
}

// 設問は別テーブルで管理（複数の設問に対応）
type Question struct {
	gorm.Model
	QuizID   uint   `gorm:"index;not null"` // Quizテーブルの ID を参照
	Text     string `gorm:"not null"`       // 設問文
	Choices  string `gorm:"not null"`       // 選択肢。JSON配列の文字列として保持
	Answer   int    `gorm:"not null"`       // Choices内の正解インデックス
	Position int    `gorm:"not null;default:0"`
}

// Attempt はユーザーによる1回の解答結果を表します。
type Attempt struct {
	gorm.Model
	UserID uint `gorm:"index;not null"` // 解答者のID
	QuizID uint `gorm:"index;not null"` // 解答したクイズのID
	Score  int  `gorm:"not null"`       // 正解数
	Total  int  `gorm:"not null"`       // 設問数
}
