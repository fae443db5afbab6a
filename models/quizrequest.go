package models

// QuizCreateRequest は管理画面からのクイズ作成リクエストを表します。
type QuizCreateRequest struct {
	Title string `json:"title" binding:"required"`
}

// QuizUpdateRequest はクイズのタイトル変更・状態遷移のリクエストを表します。
// どちらのフィールドも省略可能で、指定されたものだけが更新されます。
type QuizUpdateRequest struct {
	Title string `json:"title,omitempty"`
	State string `json:"state,omitempty"` // "draft", "published", "archived"
}

// QuestionCreateRequest は設問追加リクエストを表します。
type QuestionCreateRequest struct {
	Text     string   `json:"text" binding:"required"`
	Choices  []string `json:"choices" binding:"required,min=2"`
	Answer   int      `json:"answer"`   // Choices内の正解インデックス
	Position int      `json:"position"` // 表示順。省略時は末尾に追加
}

// AttemptRequest はクイズへの解答送信リクエストを表します。
// Answersは設問の表示順に対応する選択肢インデックスの配列です。
type AttemptRequest struct {
	Answers []int `json:"answers" binding:"required"`
}
