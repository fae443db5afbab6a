package screens

import (
	"testing"

	"quizserver/models"

	"github.com/stretchr/testify/assert"
)

func TestScoreAnswers(t *testing.T) {
	questions := []models.Question{
		{Answer: 0},
		{Answer: 2},
		{Answer: 1},
	}

	tests := []struct {
		name    string
		answers []int
		score   int
		total   int
	}{
		{name: "全問正解", answers: []int{0, 2, 1}, score: 3, total: 3},
		{name: "一部正解", answers: []int{0, 1, 1}, score: 2, total: 3},
		{name: "全問不正解", answers: []int{3, 3, 3}, score: 0, total: 3},
		{name: "解答不足は不正解扱い", answers: []int{0}, score: 1, total: 3},
		{name: "余分な解答は無視", answers: []int{0, 2, 1, 0, 0}, score: 3, total: 3},
		{name: "解答なし", answers: nil, score: 0, total: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, total := scoreAnswers(questions, tt.answers)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestScoreAnswersEmptyQuiz(t *testing.T) {
	score, total := scoreAnswers(nil, []int{1, 2})
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, total)
}
