package screens

import (
	"quizserver/models"
)

// scoreAnswers は設問の表示順に対応する解答インデックスを採点します。
// 解答が足りない設問は不正解、余分な解答は無視します。
func scoreAnswers(questions []models.Question, answers []int) (score, total int) {
	total = len(questions)
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if answers[i] == q.Answer {
			score++
		}
	}
	return score, total
}
